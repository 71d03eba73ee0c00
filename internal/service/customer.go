package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"agendo/internal/domain"
	"agendo/internal/repository"
	"agendo/pkg/validator"
)

type CustomerServiceImpl struct {
	repo          repository.CustomerRepository
	blockListRepo repository.BlockListRepository
	logger        *zap.Logger
}

func NewCustomerService(
	repo repository.CustomerRepository,
	blockListRepo repository.BlockListRepository,
	logger *zap.Logger,
) *CustomerServiceImpl {
	return &CustomerServiceImpl{
		repo:          repo,
		blockListRepo: blockListRepo,
		logger:        logger,
	}
}

// Create cadastra o cliente e o vincula à empresa. Um telefone já conhecido
// reaproveita o cadastro existente em vez de duplicar.
func (s *CustomerServiceImpl) Create(ctx context.Context, companyID string, dto domain.CreateCustomerDTO) (string, error) {
	if !validator.ValidatePhone(dto.Phone) {
		return "", errors.New("telefone inválido")
	}
	dto.Phone = validator.FormatPhone(dto.Phone)
	dto.Name = validator.SanitizeString(dto.Name)

	existing, err := s.repo.GetByPhone(ctx, dto.Phone)
	if err != nil {
		s.logger.Error("erro ao buscar cliente por telefone", zap.Error(err))
		return "", errors.New("erro ao criar cliente")
	}

	customerID := ""
	if existing != nil {
		customerID = existing.ID
	} else {
		customerID, err = s.repo.Create(ctx, dto)
		if err != nil {
			s.logger.Error("erro ao criar cliente", zap.Error(err))
			return "", errors.New("erro ao criar cliente")
		}
	}

	if err := s.repo.LinkToCompany(ctx, companyID, customerID); err != nil {
		s.logger.Error("erro ao vincular cliente", zap.String("companyId", companyID), zap.Error(err))
		return "", errors.New("erro ao criar cliente")
	}

	return customerID, nil
}

func (s *CustomerServiceImpl) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("erro ao buscar cliente", zap.String("id", id), zap.Error(err))
		return nil, errors.New("erro ao buscar cliente")
	}
	if customer == nil {
		return nil, errors.New("cliente não encontrado")
	}

	blocked, err := s.blockListRepo.GetByPhone(ctx, customer.Phone)
	if err != nil {
		s.logger.Warn("erro ao consultar bloqueio do cliente", zap.String("id", id), zap.Error(err))
	}
	customer.IsBlocked = blocked != nil

	return customer, nil
}

func (s *CustomerServiceImpl) Update(ctx context.Context, id string, dto domain.UpdateCustomerDTO) error {
	if dto.Phone != nil {
		if !validator.ValidatePhone(*dto.Phone) {
			return errors.New("telefone inválido")
		}
		formatted := validator.FormatPhone(*dto.Phone)
		dto.Phone = &formatted
	}
	if dto.Name != nil {
		sanitized := validator.SanitizeString(*dto.Name)
		dto.Name = &sanitized
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("erro ao atualizar cliente", zap.String("id", id), zap.Error(err))
		return errors.New("erro ao atualizar cliente")
	}
	return nil
}

func (s *CustomerServiceImpl) List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}

	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("erro ao listar clientes", zap.Error(err))
		return nil, 0, errors.New("erro ao listar clientes")
	}
	return customers, total, nil
}

func (s *CustomerServiceImpl) RemoveFromCompany(ctx context.Context, companyID, customerID string) error {
	if err := s.repo.UnlinkFromCompany(ctx, companyID, customerID); err != nil {
		s.logger.Error("erro ao desvincular cliente",
			zap.String("companyId", companyID),
			zap.String("customerId", customerID),
			zap.Error(err),
		)
		return errors.New("erro ao remover cliente da empresa")
	}
	return nil
}

func (s *CustomerServiceImpl) BlockNumber(ctx context.Context, dto domain.BlockNumberDTO) (*domain.BlockedNumber, error) {
	if !validator.ValidatePhone(dto.PhoneNumber) {
		return nil, errors.New("telefone inválido")
	}
	dto.PhoneNumber = validator.FormatPhone(dto.PhoneNumber)

	blocked, err := s.blockListRepo.Block(ctx, dto)
	if err != nil {
		s.logger.Error("erro ao bloquear número", zap.String("phone", dto.PhoneNumber), zap.Error(err))
		return nil, errors.New("erro ao bloquear número")
	}
	return blocked, nil
}

func (s *CustomerServiceImpl) UnblockNumber(ctx context.Context, phoneNumber string) error {
	if err := s.blockListRepo.Unblock(ctx, validator.FormatPhone(phoneNumber)); err != nil {
		s.logger.Error("erro ao desbloquear número", zap.String("phone", phoneNumber), zap.Error(err))
		return errors.New("erro ao desbloquear número")
	}
	return nil
}
