package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"agendo/internal/domain"
	"agendo/internal/repository"
	"agendo/pkg/auth"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("erro ao buscar usuário", zap.String("id", id), zap.Error(err))
		return nil, errors.New("erro ao buscar usuário")
	}
	if user == nil {
		return nil, errors.New("usuário não encontrado")
	}
	return user, nil
}

func (s *UserServiceImpl) Update(ctx context.Context, id string, dto domain.UpdateUserDTO) error {
	if dto.Email != nil {
		existing, err := s.repo.GetByEmail(ctx, *dto.Email)
		if err == nil && existing != nil && existing.ID != id {
			return errors.New("já existe um usuário com este e-mail")
		}
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("erro ao atualizar usuário", zap.String("id", id), zap.Error(err))
		return errors.New("erro ao atualizar usuário")
	}
	return nil
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id string, dto domain.PasswordUpdateDTO) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil || user == nil {
		s.logger.Error("erro ao buscar usuário para troca de senha", zap.String("id", id), zap.Error(err))
		return errors.New("usuário não encontrado")
	}

	ok, err := auth.VerifyPassword(dto.OldPassword, user.PasswordHash)
	if err != nil || !ok {
		return errors.New("senha atual incorreta")
	}

	newHash, err := auth.HashPassword(dto.NewPassword)
	if err != nil {
		s.logger.Error("erro ao gerar hash de senha", zap.Error(err))
		return errors.New("erro ao atualizar senha")
	}

	if err := s.repo.UpdatePassword(ctx, id, newHash); err != nil {
		s.logger.Error("erro ao atualizar senha", zap.String("id", id), zap.Error(err))
		return errors.New("erro ao atualizar senha")
	}
	return nil
}

func (s *UserServiceImpl) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	users, err := s.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		s.logger.Error("erro ao listar usuários", zap.String("companyId", companyID), zap.Error(err))
		return nil, errors.New("erro ao listar usuários")
	}
	return users, nil
}
