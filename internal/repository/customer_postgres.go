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

type CustomerRepo struct {
	db DB
}

func NewCustomerRepository(db DB) CustomerRepository {
	return &CustomerRepo{db: db}
}

func (r *CustomerRepo) Create(ctx context.Context, dto domain.CreateCustomerDTO) (string, error) {
	id := uuid.New().String()
	now := time.Now()

	query := `
		INSERT INTO customers (id, name, phone, birth_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`

	_, err := r.db.Exec(ctx, query, id, dto.Name, dto.Phone, dto.BirthDate, now)
	if err != nil {
		return "", fmt.Errorf("erro ao criar cliente: %w", err)
	}

	return id, nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		SELECT id, name, phone, birth_date, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *CustomerRepo) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	query := `
		SELECT id, name, phone, birth_date, created_at, updated_at
		FROM customers
		WHERE phone = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, phone))
}

func (r *CustomerRepo) scanOne(row pgx.Row) (*domain.Customer, error) {
	var customer domain.Customer
	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Phone,
		&customer.BirthDate,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}

	return &customer, nil
}

func (r *CustomerRepo) Update(ctx context.Context, id string, dto domain.UpdateCustomerDTO) error {
	query := `UPDATE customers SET updated_at = $1`
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
	if dto.BirthDate != nil {
		query += fmt.Sprintf(", birth_date = $%d", argPos)
		args = append(args, *dto.BirthDate)
		argPos++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}

	return nil
}

func (r *CustomerRepo) List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, int, error) {
	countQuery := `SELECT COUNT(DISTINCT c.id) FROM customers c`
	selectQuery := `
		SELECT DISTINCT c.id, c.name, c.phone, c.birth_date, c.created_at, c.updated_at
		FROM customers c
	`

	join := ""
	if filter.CompanyID != nil {
		join = ` JOIN company_customers cc ON cc.customer_id = c.id`
	}

	conditions := ` WHERE 1=1`
	var args []any
	argPos := 1

	if filter.CompanyID != nil {
		conditions += fmt.Sprintf(" AND cc.company_id = $%d", argPos)
		args = append(args, *filter.CompanyID)
		argPos++
	}

	if filter.Query != "" {
		conditions += fmt.Sprintf(" AND (c.name ILIKE $%d OR c.phone ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+filter.Query+"%")
		argPos++
	}

	countQuery += join + conditions
	selectQuery += join + conditions

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar clientes: %w", err)
	}

	selectQuery += fmt.Sprintf(" ORDER BY c.name LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Phone,
			&customer.BirthDate,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao ler cliente: %w", err)
		}
		customers = append(customers, customer)
	}

	return customers, total, rows.Err()
}

func (r *CustomerRepo) LinkToCompany(ctx context.Context, companyID, customerID string) error {
	query := `
		INSERT INTO company_customers (company_id, customer_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (company_id, customer_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, companyID, customerID, time.Now())
	if err != nil {
		return fmt.Errorf("erro ao vincular cliente à empresa: %w", err)
	}

	return nil
}

func (r *CustomerRepo) UnlinkFromCompany(ctx context.Context, companyID, customerID string) error {
	query := `DELETE FROM company_customers WHERE company_id = $1 AND customer_id = $2`

	tag, err := r.db.Exec(ctx, query, companyID, customerID)
	if err != nil {
		return fmt.Errorf("erro ao desvincular cliente da empresa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cliente não vinculado à empresa")
	}

	return nil
}
