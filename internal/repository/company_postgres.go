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

type CompanyRepo struct {
	db DB
}

func NewCompanyRepository(db DB) CompanyRepository {
	return &CompanyRepo{db: db}
}

func (r *CompanyRepo) Create(ctx context.Context, name, phone, email string) (string, error) {
	id := uuid.New().String()
	now := time.Now()

	query := `
		INSERT INTO companies (id, name, phone, email, appointment_days, appointment_interval, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 15, 30, $5, $5)
	`

	_, err := r.db.Exec(ctx, query, id, name, phone, email, now)
	if err != nil {
		return "", fmt.Errorf("erro ao criar empresa: %w", err)
	}

	return id, nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `
		SELECT id, name, phone, email, COALESCE(address, ''), COALESCE(photo_url, ''),
		       appointment_days, appointment_interval, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var company domain.Company
	err := r.db.QueryRow(ctx, query, id).Scan(
		&company.ID,
		&company.Name,
		&company.Phone,
		&company.Email,
		&company.Address,
		&company.PhotoURL,
		&company.AppointmentDays,
		&company.AppointmentInterval,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar empresa: %w", err)
	}

	return &company, nil
}

func (r *CompanyRepo) Update(ctx context.Context, id string, dto domain.UpdateCompanyDTO) error {
	query := `UPDATE companies SET updated_at = $1`
	args := []any{time.Now()}
	argPos := 2

	if dto.Name != nil {
		query += fmt.Sprintf(", name = $%d", argPos)
		args = append(args, *dto.Name)
		argPos++
	}
	if dto.Phone != nil {
		query += fmt.Sprintf(", phone = $%d", argPos)
		args = append(args, *dto.Phone)
		argPos++
	}
	if dto.Email != nil {
		query += fmt.Sprintf(", email = $%d", argPos)
		args = append(args, *dto.Email)
		argPos++
	}
	if dto.Address != nil {
		query += fmt.Sprintf(", address = $%d", argPos)
		args = append(args, *dto.Address)
		argPos++
	}
	if dto.AppointmentDays != nil {
		query += fmt.Sprintf(", appointment_days = $%d", argPos)
		args = append(args, *dto.AppointmentDays)
		argPos++
	}
	if dto.AppointmentInterval != nil {
		query += fmt.Sprintf(", appointment_interval = $%d", argPos)
		args = append(args, *dto.AppointmentInterval)
		argPos++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar empresa: %w", err)
	}

	return nil
}

func (r *CompanyRepo) UpdatePhoto(ctx context.Context, id string, photoURL string) error {
	query := `UPDATE companies SET photo_url = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, photoURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("erro ao atualizar foto da empresa: %w", err)
	}

	return nil
}
