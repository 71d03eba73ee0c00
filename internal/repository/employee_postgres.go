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

type EmployeeRepo struct {
	db DB
}

func NewEmployeeRepository(db DB) EmployeeRepository {
	return &EmployeeRepo{db: db}
}

func (r *EmployeeRepo) Create(ctx context.Context, companyID string, dto domain.CreateEmployeeDTO) (string, error) {
	id := uuid.New().String()
	now := time.Now()

	query := `
		INSERT INTO employees (id, company_id, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, true, $4, $4)
	`

	_, err := r.db.Exec(ctx, query, id, companyID, dto.Name, now)
	if err != nil {
		return "", fmt.Errorf("erro ao criar funcionário: %w", err)
	}

	return id, nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `
		SELECT id, company_id, name, active, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var employee domain.Employee
	err := r.db.QueryRow(ctx, query, id).Scan(
		&employee.ID,
		&employee.CompanyID,
		&employee.Name,
		&employee.Active,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar funcionário: %w", err)
	}

	workWeeks, err := r.GetWorkWeeks(ctx, id)
	if err != nil {
		return nil, err
	}
	employee.WorkWeeks = workWeeks

	return &employee, nil
}

func (r *EmployeeRepo) Update(ctx context.Context, id string, dto domain.UpdateEmployeeDTO) error {
	query := `UPDATE employees SET updated_at = $1`
	args := []any{time.Now()}
	argPos := 2

	if dto.Name != nil {
		query += fmt.Sprintf(", name = $%d", argPos)
		args = append(args, *dto.Name)
		argPos++
	}
	if dto.Active != nil {
		query += fmt.Sprintf(", active = $%d", argPos)
		args = append(args, *dto.Active)
		argPos++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar funcionário: %w", err)
	}

	return nil
}

func (r *EmployeeRepo) List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	query := `
		SELECT id, company_id, name, active, created_at, updated_at
		FROM employees
		WHERE 1=1
	`
	var args []any
	argPos := 1

	if filter.CompanyID != nil {
		query += fmt.Sprintf(" AND company_id = $%d", argPos)
		args = append(args, *filter.CompanyID)
		argPos++
	}

	if filter.Active != nil {
		query += fmt.Sprintf(" AND active = $%d", argPos)
		args = append(args, *filter.Active)
		argPos++
	}

	query += " ORDER BY name"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar funcionários: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var employee domain.Employee
		err := rows.Scan(
			&employee.ID,
			&employee.CompanyID,
			&employee.Name,
			&employee.Active,
			&employee.CreatedAt,
			&employee.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler funcionário: %w", err)
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range employees {
		workWeeks, err := r.GetWorkWeeks(ctx, employees[i].ID)
		if err != nil {
			return nil, err
		}
		employees[i].WorkWeeks = workWeeks
	}

	return employees, nil
}

// ReplaceWorkWeeks troca a semana inteira numa transação: o painel sempre
// envia o conjunto completo, então apagar e reinserir mantém o estado
// idêntico ao formulário.
func (r *EmployeeRepo) ReplaceWorkWeeks(ctx context.Context, employeeID string, entries []domain.WorkWeekEntryDTO) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao abrir transação: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM work_weeks WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("erro ao limpar semana de trabalho: %w", err)
	}

	query := `
		INSERT INTO work_weeks (id, employee_id, day_of_week, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	now := time.Now()

	for _, entry := range entries {
		_, err := tx.Exec(ctx, query, uuid.New().String(), employeeID, entry.DayOfWeek, entry.StartTime, entry.EndTime, now)
		if err != nil {
			return fmt.Errorf("erro ao gravar semana de trabalho: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao confirmar semana de trabalho: %w", err)
	}

	return nil
}

func (r *EmployeeRepo) GetWorkWeeks(ctx context.Context, employeeID string) ([]domain.WorkWeek, error) {
	query := `
		SELECT id, employee_id, day_of_week, start_time, end_time
		FROM work_weeks
		WHERE employee_id = $1
		ORDER BY day_of_week, start_time
	`

	rows, err := r.db.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar semana de trabalho: %w", err)
	}
	defer rows.Close()

	var workWeeks []domain.WorkWeek
	for rows.Next() {
		var ww domain.WorkWeek
		err := rows.Scan(&ww.ID, &ww.EmployeeID, &ww.DayOfWeek, &ww.StartTime, &ww.EndTime)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler semana de trabalho: %w", err)
		}
		workWeeks = append(workWeeks, ww)
	}

	return workWeeks, rows.Err()
}
