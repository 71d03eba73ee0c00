package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"agendo/internal/domain"
	"agendo/internal/repository"
	"agendo/pkg/validator"
)

type CatalogServiceImpl struct {
	repo   repository.ServiceRepository
	logger *zap.Logger
}

func NewCatalogService(repo repository.ServiceRepository, logger *zap.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *CatalogServiceImpl) Create(ctx context.Context, companyID string, dto domain.CreateServiceDTO) (string, error) {
	dto.Name = validator.SanitizeString(dto.Name)
	dto.Description = validator.SanitizeString(dto.Description)

	id, err := s.repo.Create(ctx, companyID, dto)
	if err != nil {
		s.logger.Error("erro ao criar serviço", zap.String("companyId", companyID), zap.Error(err))
		return "", errors.New("erro ao criar serviço")
	}
	return id, nil
}

func (s *CatalogServiceImpl) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	service, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("erro ao buscar serviço", zap.String("id", id), zap.Error(err))
		return nil, errors.New("erro ao buscar serviço")
	}
	if service == nil {
		return nil, errors.New("serviço não encontrado")
	}
	return service, nil
}

func (s *CatalogServiceImpl) Update(ctx context.Context, id string, dto domain.UpdateServiceDTO) error {
	if dto.Name != nil {
		sanitized := validator.SanitizeString(*dto.Name)
		dto.Name = &sanitized
	}
	if dto.Description != nil {
		sanitized := validator.SanitizeString(*dto.Description)
		dto.Description = &sanitized
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("erro ao atualizar serviço", zap.String("id", id), zap.Error(err))
		return errors.New("erro ao atualizar serviço")
	}
	return nil
}

// Delete desativa o serviço; o histórico de agendamentos continua íntegro.
func (s *CatalogServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		s.logger.Error("erro ao remover serviço", zap.String("id", id), zap.Error(err))
		return errors.New("erro ao remover serviço")
	}
	return nil
}

func (s *CatalogServiceImpl) List(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}

	services, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("erro ao listar serviços", zap.Error(err))
		return nil, 0, errors.New("erro ao listar serviços")
	}
	return services, total, nil
}
