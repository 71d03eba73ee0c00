package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"agendo/internal/domain"
)

type ServiceRepo struct {
	db DB
}

func NewServiceRepository(db DB) ServiceRepository {
	return &ServiceRepo{db: db}
}

func (r *ServiceRepo) Create(ctx context.Context, companyID string, dto domain.CreateServiceDTO) (string, error) {
	id := uuid.New().String()
	now := time.Now()

	query := `
		INSERT INTO services (id, company_id, name, price, duration, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, true, $7, $7)
	`

	_, err := r.db.Exec(ctx, query, id, companyID, dto.Name, dto.Price, dto.Duration, dto.Description, now)
	if err != nil {
		return "", fmt.Errorf("erro ao criar serviço: %w", err)
	}

	return id, nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	query := `
		SELECT id, company_id, name, price, duration, COALESCE(description, ''), active, created_at, updated_at
		FROM services
		WHERE id = $1
	`

	var service domain.Service
	err := r.db.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.CompanyID,
		&service.Name,
		&service.Price,
		&service.Duration,
		&service.Description,
		&service.Active,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar serviço: %w", err)
	}

	return &service, nil
}

// GetByIDs resolve os serviços de um agendamento. Só retorna serviços ativos
// da própria empresa; ids de fora somem do resultado e cabe ao chamador
// conferir o tamanho.
func (r *ServiceRepo) GetByIDs(ctx context.Context, companyID string, ids []string) ([]domain.Service, error) {
	query := `
		SELECT id, company_id, name, price, duration, COALESCE(description, ''), active, created_at, updated_at
		FROM services
		WHERE company_id = $1 AND active = true AND id = ANY($2)
	`

	rows, err := r.db.Query(ctx, query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar serviços: %w", err)
	}
	defer rows.Close()

	return scanServices(rows)
}

func (r *ServiceRepo) Update(ctx context.Context, id string, dto domain.UpdateServiceDTO) error {
	query := `UPDATE services SET updated_at = $1`
	args := []any{time.Now()}
	argPos := 2

	if dto.Name != nil {
		query += fmt.Sprintf(", name = $%d", argPos)
		args = append(args, *dto.Name)
		argPos++
	}
	if dto.Price != nil {
		query += fmt.Sprintf(", price = $%d", argPos)
		args = append(args, *dto.Price)
		argPos++
	}
	if dto.Duration != nil {
		query += fmt.Sprintf(", duration = $%d", argPos)
		args = append(args, *dto.Duration)
		argPos++
	}
	if dto.Description != nil {
		query += fmt.Sprintf(", description = $%d", argPos)
		args = append(args, *dto.Description)
		argPos++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar serviço: %w", err)
	}

	return nil
}

// Deactivate é a exclusão do catálogo: agendamentos antigos continuam
// apontando para o serviço.
func (r *ServiceRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE services SET active = false, updated_at = $1 WHERE id = $2`

	tag, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("erro ao desativar serviço: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("serviço não encontrado")
	}

	return nil
}

func (r *ServiceRepo) List(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, int, error) {
	countQuery := `SELECT COUNT(*) FROM services`
	selectQuery := `
		SELECT id, company_id, name, price, duration, COALESCE(description, ''), active, created_at, updated_at
		FROM services
	`

	conditions := ` WHERE 1=1`
	var args []any
	argPos := 1

	if filter.CompanyID != nil {
		conditions += fmt.Sprintf(" AND company_id = $%d", argPos)
		args = append(args, *filter.CompanyID)
		argPos++
	}

	if filter.Active != nil {
		conditions += fmt.Sprintf(" AND active = $%d", argPos)
		args = append(args, *filter.Active)
		argPos++
	}

	if filter.Query != "" {
		conditions += fmt.Sprintf(" AND name ILIKE $%d", argPos)
		args = append(args, "%"+filter.Query+"%")
		argPos++
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery+conditions, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar serviços: %w", err)
	}

	selectQuery += conditions + fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar serviços: %w", err)
	}
	defer rows.Close()

	services, err := scanServices(rows)
	if err != nil {
		return nil, 0, err
	}

	return services, total, nil
}

func scanServices(rows pgx.Rows) ([]domain.Service, error) {
	var services []domain.Service
	for rows.Next() {
		var service domain.Service
		err := rows.Scan(
			&service.ID,
			&service.CompanyID,
			&service.Name,
			&service.Price,
			&service.Duration,
			&service.Description,
			&service.Active,
			&service.CreatedAt,
			&service.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler serviço: %w", err)
		}
		services = append(services, service)
	}

	return services, rows.Err()
}
