package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"agendo/internal/domain"
	"agendo/internal/repository"
)

type BotServiceImpl struct {
	repo        repository.BotRepository
	companyRepo repository.CompanyRepository
	logger      *zap.Logger
}

func NewBotService(repo repository.BotRepository, companyRepo repository.CompanyRepository, logger *zap.Logger) *BotServiceImpl {
	return &BotServiceImpl{
		repo:        repo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// GetByCompanyID devolve os parâmetros do bot. Uma empresa que nunca salvou
// parâmetros recebe os padrões, com a foto preenchida a partir do cadastro.
func (s *BotServiceImpl) GetByCompanyID(ctx context.Context, companyID string) (*domain.BotParameters, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		s.logger.Error("erro ao buscar empresa", zap.String("companyId", companyID), zap.Error(err))
		return nil, errors.New("erro ao buscar parâmetros do bot")
	}
	if company == nil {
		return nil, errors.New("empresa não encontrada")
	}

	params, err := s.repo.GetByCompanyID(ctx, companyID)
	if err != nil {
		s.logger.Error("erro ao buscar parâmetros do bot", zap.String("companyId", companyID), zap.Error(err))
		return nil, errors.New("erro ao buscar parâmetros do bot")
	}
	if params == nil {
		params = &domain.BotParameters{CompanyID: companyID}
	}

	params.FotoCompany = company.PhotoURL
	if params.EnderecoAtendimento == "" {
		params.EnderecoAtendimento = company.Address
	}

	return params, nil
}

func (s *BotServiceImpl) Update(ctx context.Context, companyID string, dto domain.UpdateBotParametersDTO) (*domain.BotParameters, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil || company == nil {
		return nil, errors.New("empresa não encontrada")
	}

	params, err := s.repo.Upsert(ctx, companyID, dto)
	if err != nil {
		s.logger.Error("erro ao salvar parâmetros do bot", zap.String("companyId", companyID), zap.Error(err))
		return nil, errors.New("erro ao salvar parâmetros do bot")
	}

	params.FotoCompany = company.PhotoURL
	return params, nil
}
