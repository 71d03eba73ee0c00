package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"agendo/internal/domain"
	"agendo/internal/repository"
	"agendo/internal/storage"
)

type CompanyServiceImpl struct {
	repo            repository.CompanyRepository
	appointmentRepo repository.AppointmentRepository
	fileStorage     storage.FileStorage
	logger          *zap.Logger
}

func NewCompanyService(
	repo repository.CompanyRepository,
	appointmentRepo repository.AppointmentRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *CompanyServiceImpl {
	return &CompanyServiceImpl{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		fileStorage:     fileStorage,
		logger:          logger,
	}
}

func (s *CompanyServiceImpl) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("erro ao buscar empresa", zap.String("id", id), zap.Error(err))
		return nil, errors.New("erro ao buscar empresa")
	}
	if company == nil {
		return nil, errors.New("empresa não encontrada")
	}
	return company, nil
}

func (s *CompanyServiceImpl) Update(ctx context.Context, id string, dto domain.UpdateCompanyDTO) error {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil || company == nil {
		return errors.New("empresa não encontrada")
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("erro ao atualizar empresa", zap.String("id", id), zap.Error(err))
		return errors.New("erro ao atualizar empresa")
	}
	return nil
}

// UploadPhoto troca a foto da empresa: sobe a nova, aponta o cadastro para
// ela e só então apaga a antiga.
func (s *CompanyServiceImpl) UploadPhoto(ctx context.Context, id string, photo []byte, filename string) (string, error) {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil || company == nil {
		return "", errors.New("empresa não encontrada")
	}

	url, err := s.fileStorage.UploadFile(ctx, photo, filename)
	if err != nil {
		s.logger.Error("erro ao enviar foto da empresa", zap.String("id", id), zap.Error(err))
		return "", errors.New("erro ao enviar foto")
	}

	if err := s.repo.UpdatePhoto(ctx, id, url); err != nil {
		s.logger.Error("erro ao gravar foto da empresa", zap.String("id", id), zap.Error(err))
		return "", errors.New("erro ao enviar foto")
	}

	if company.PhotoURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, company.PhotoURL); err != nil {
			s.logger.Warn("erro ao remover foto antiga", zap.String("id", id), zap.Error(err))
		}
	}

	return url, nil
}

// MonthReport fecha o mês: agendamentos concluídos agrupados por serviço,
// com o total pago de cada um. Qualquer dia do mês pedido serve de referência.
func (s *CompanyServiceImpl) MonthReport(ctx context.Context, id string, dto domain.MonthReportRequest) (*domain.MonthReport, error) {
	start := time.Date(dto.Date.Year(), dto.Date.Month(), 1, 0, 0, 0, 0, dto.Date.Location())
	end := start.AddDate(0, 1, 0)

	rows, err := s.appointmentRepo.MonthReport(ctx, id, start, end)
	if err != nil {
		s.logger.Error("erro ao gerar relatório mensal", zap.String("companyId", id), zap.Error(err))
		return nil, errors.New("erro ao gerar relatório")
	}

	report := &domain.MonthReport{
		CompanyID: id,
		Month:     start.Format("01/2006"),
		Rows:      rows,
	}
	for _, row := range rows {
		report.TotalPaid += row.TotalPaid
		report.Appointments += row.Appointments
	}

	return report, nil
}
