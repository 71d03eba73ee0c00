package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"agendo/internal/domain"
	"agendo/internal/repository"
	"agendo/internal/scheduling"
	"agendo/pkg/validator"
)

type EmployeeServiceImpl struct {
	repo   repository.EmployeeRepository
	logger *zap.Logger
}

func NewEmployeeService(repo repository.EmployeeRepository, logger *zap.Logger) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, companyID string, dto domain.CreateEmployeeDTO) (string, error) {
	dto.Name = validator.SanitizeString(dto.Name)

	id, err := s.repo.Create(ctx, companyID, dto)
	if err != nil {
		s.logger.Error("erro ao criar funcionário", zap.String("companyId", companyID), zap.Error(err))
		return "", errors.New("erro ao criar funcionário")
	}
	return id, nil
}

func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	employee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("erro ao buscar funcionário", zap.String("id", id), zap.Error(err))
		return nil, errors.New("erro ao buscar funcionário")
	}
	if employee == nil {
		return nil, errors.New("funcionário não encontrado")
	}
	return employee, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, dto domain.UpdateEmployeeDTO) error {
	if dto.Name != nil {
		sanitized := validator.SanitizeString(*dto.Name)
		dto.Name = &sanitized
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("erro ao atualizar funcionário", zap.String("id", id), zap.Error(err))
		return errors.New("erro ao atualizar funcionário")
	}
	return nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	employees, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("erro ao listar funcionários", zap.Error(err))
		return nil, errors.New("erro ao listar funcionários")
	}
	return employees, nil
}

// UpdateWorkWeek valida e substitui a semana de trabalho inteira do
// funcionário. A validação é dia a dia, de segunda a domingo, e para na
// primeira falha; a mensagem devolvida nomeia o dia e o motivo.
func (s *EmployeeServiceImpl) UpdateWorkWeek(ctx context.Context, employeeID string, dto domain.UpdateWorkWeeksDTO) error {
	employee, err := s.repo.GetByID(ctx, employeeID)
	if err != nil || employee == nil {
		return errors.New("funcionário não encontrado")
	}

	proposed := make([]domain.WorkWeek, 0, len(dto.WorkWeeks))
	for _, entry := range dto.WorkWeeks {
		if !entry.DayOfWeek.Valid() {
			return errors.New("dia da semana inválido")
		}
		if !validator.ValidateTime(entry.StartTime) || !validator.ValidateTime(entry.EndTime) {
			return errors.New("horário inválido: use o formato HH:MM")
		}
		proposed = append(proposed, domain.WorkWeek{
			EmployeeID: employeeID,
			DayOfWeek:  entry.DayOfWeek,
			StartTime:  entry.StartTime,
			EndTime:    entry.EndTime,
		})
	}

	if weekErr := scheduling.ValidateWeek(scheduling.GroupByDay(proposed)); weekErr != nil {
		return weekErr
	}

	if err := s.repo.ReplaceWorkWeeks(ctx, employeeID, dto.WorkWeeks); err != nil {
		s.logger.Error("erro ao gravar semana de trabalho", zap.String("employeeId", employeeID), zap.Error(err))
		return errors.New("erro ao salvar semana de trabalho")
	}
	return nil
}
