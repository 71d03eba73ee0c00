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

type AppointmentRepo struct {
	db DB
}

func NewAppointmentRepository(db DB) AppointmentRepository {
	return &AppointmentRepo{db: db}
}

// Create grava o agendamento e seus serviços numa transação. prices congela
// o preço de catálogo de cada serviço no momento do agendamento.
func (r *AppointmentRepo) Create(ctx context.Context, employeeID string, dto domain.CreateAppointmentDTO, scheduledDate time.Time, prices map[string]float64) (string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("erro ao abrir transação: %w", err)
	}
	defer tx.Rollback(ctx)

	id := uuid.New().String()
	now := time.Now()

	query := `
		INSERT INTO appointments (id, company_id, customer_id, employee_id, scheduled_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`

	_, err = tx.Exec(ctx, query, id, dto.CompanyID, dto.CustomerID, employeeID, scheduledDate, domain.AppointmentStatusScheduled, now)
	if err != nil {
		return "", fmt.Errorf("erro ao criar agendamento: %w", err)
	}

	if err := insertAppointmentServices(ctx, tx, id, dto.ServiceIDs, prices); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("erro ao confirmar agendamento: %w", err)
	}

	return id, nil
}

func insertAppointmentServices(ctx context.Context, tx pgx.Tx, appointmentID string, serviceIDs []string, amounts map[string]float64) error {
	query := `
		INSERT INTO appointment_services (appointment_id, service_id, paid_amount)
		VALUES ($1, $2, $3)
	`

	for _, serviceID := range serviceIDs {
		if _, err := tx.Exec(ctx, query, appointmentID, serviceID, amounts[serviceID]); err != nil {
			return fmt.Errorf("erro ao vincular serviço ao agendamento: %w", err)
		}
	}

	return nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	query := `
		SELECT a.id, a.company_id, a.customer_id, a.employee_id, a.scheduled_date, a.status,
		       a.payment_type, a.discount_type, a.discount_value, a.total_paid,
		       COALESCE(a.updated_user_id, ''), a.created_at, a.updated_at, e.name
		FROM appointments a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var appointment domain.Appointment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&appointment.ID,
		&appointment.CompanyID,
		&appointment.CustomerID,
		&appointment.EmployeeID,
		&appointment.ScheduledDate,
		&appointment.Status,
		&appointment.PaymentType,
		&appointment.DiscountType,
		&appointment.DiscountValue,
		&appointment.TotalPaid,
		&appointment.UpdatedUserID,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
		&appointment.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar agendamento: %w", err)
	}

	appointments := []domain.Appointment{appointment}
	if err := r.attachServices(ctx, appointments); err != nil {
		return nil, err
	}

	return &appointments[0], nil
}

func (r *AppointmentRepo) Update(ctx context.Context, id string, employeeID *string, scheduledDate *time.Time, dto domain.UpdateAppointmentDTO, prices map[string]float64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao abrir transação: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE appointments SET updated_at = $1`
	args := []any{time.Now()}
	argPos := 2

	if dto.CustomerID != nil {
		query += fmt.Sprintf(", customer_id = $%d", argPos)
		args = append(args, *dto.CustomerID)
		argPos++
	}
	if employeeID != nil {
		query += fmt.Sprintf(", employee_id = $%d", argPos)
		args = append(args, *employeeID)
		argPos++
	}
	if scheduledDate != nil {
		query += fmt.Sprintf(", scheduled_date = $%d", argPos)
		args = append(args, *scheduledDate)
		argPos++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar agendamento: %w", err)
	}

	if len(dto.ServiceIDs) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM appointment_services WHERE appointment_id = $1`, id); err != nil {
			return fmt.Errorf("erro ao limpar serviços do agendamento: %w", err)
		}
		if err := insertAppointmentServices(ctx, tx, id, dto.ServiceIDs, prices); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao confirmar agendamento: %w", err)
	}

	return nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, updatedUserID string) error {
	query := `UPDATE appointments SET status = $1, updated_user_id = $2, updated_at = $3 WHERE id = $4`

	tag, err := r.db.Exec(ctx, query, status, updatedUserID, time.Now(), id)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status do agendamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("agendamento não encontrado")
	}

	return nil
}

// Finish conclui o agendamento: grava pagamento, desconto e o rateio pago
// por serviço, tudo na mesma transação.
func (r *AppointmentRepo) Finish(ctx context.Context, id string, dto domain.FinishAppointmentDTO, paidAmounts map[string]float64, updatedUserID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao abrir transação: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE appointments
		SET status = $1, payment_type = $2, discount_type = $3, discount_value = $4,
		    total_paid = $5, updated_user_id = $6, updated_at = $7
		WHERE id = $8
	`

	tag, err := tx.Exec(
		ctx,
		query,
		domain.AppointmentStatusDone,
		dto.PaymentType,
		dto.DiscountType,
		dto.DiscountValue,
		dto.TotalPaid,
		updatedUserID,
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("erro ao concluir agendamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("agendamento não encontrado")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM appointment_services WHERE appointment_id = $1`, id); err != nil {
		return fmt.Errorf("erro ao limpar serviços do agendamento: %w", err)
	}
	if err := insertAppointmentServices(ctx, tx, id, dto.ServiceIDs, paidAmounts); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao confirmar agendamento: %w", err)
	}

	return nil
}

func appointmentConditions(filter domain.AppointmentFilter) (string, []any, int) {
	conditions := ` WHERE 1=1`
	var args []any
	argPos := 1

	if filter.CompanyID != nil {
		conditions += fmt.Sprintf(" AND a.company_id = $%d", argPos)
		args = append(args, *filter.CompanyID)
		argPos++
	}
	if filter.CustomerID != nil {
		conditions += fmt.Sprintf(" AND a.customer_id = $%d", argPos)
		args = append(args, *filter.CustomerID)
		argPos++
	}
	if filter.EmployeeID != nil {
		conditions += fmt.Sprintf(" AND a.employee_id = $%d", argPos)
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Status != nil {
		conditions += fmt.Sprintf(" AND a.status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.StartDate != nil {
		conditions += fmt.Sprintf(" AND a.scheduled_date >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		conditions += fmt.Sprintf(" AND a.scheduled_date <= $%d", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}
	if len(filter.ServiceIDs) > 0 {
		conditions += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM appointment_services aps WHERE aps.appointment_id = a.id AND aps.service_id = ANY($%d))", argPos)
		args = append(args, filter.ServiceIDs)
		argPos++
	}

	return conditions, args, argPos
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	conditions, args, argPos := appointmentConditions(filter)

	query := `
		SELECT a.id, a.company_id, a.customer_id, a.employee_id, a.scheduled_date, a.status,
		       a.payment_type, a.discount_type, a.discount_value, a.total_paid,
		       COALESCE(a.updated_user_id, ''), a.created_at, a.updated_at, e.name,
		       c.id, c.name, c.phone, c.birth_date, c.created_at, c.updated_at
		FROM appointments a
		JOIN employees e ON e.id = a.employee_id
		JOIN customers c ON c.id = a.customer_id
	` + conditions + ` ORDER BY a.scheduled_date`

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar agendamentos: %w", err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		var appointment domain.Appointment
		var customer domain.Customer
		err := rows.Scan(
			&appointment.ID,
			&appointment.CompanyID,
			&appointment.CustomerID,
			&appointment.EmployeeID,
			&appointment.ScheduledDate,
			&appointment.Status,
			&appointment.PaymentType,
			&appointment.DiscountType,
			&appointment.DiscountValue,
			&appointment.TotalPaid,
			&appointment.UpdatedUserID,
			&appointment.CreatedAt,
			&appointment.UpdatedAt,
			&appointment.EmployeeName,
			&customer.ID,
			&customer.Name,
			&customer.Phone,
			&customer.BirthDate,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler agendamento: %w", err)
		}
		appointment.Customer = &customer
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachServices(ctx, appointments); err != nil {
		return nil, err
	}

	return appointments, nil
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	conditions, args, _ := appointmentConditions(filter)

	query := `SELECT COUNT(*) FROM appointments a` + conditions

	var total int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao contar agendamentos: %w", err)
	}

	return total, nil
}

// ListBetween carrega a agenda ocupada da empresa no intervalo, com a
// duração total de cada agendamento já somada. Alimenta o cálculo de
// disponibilidade, por isso traz só agendamentos não cancelados.
func (r *AppointmentRepo) ListBetween(ctx context.Context, companyID string, start, end time.Time) ([]domain.Appointment, error) {
	query := `
		SELECT a.id, a.employee_id, a.scheduled_date, a.status,
		       COALESCE(SUM(s.duration), 0)
		FROM appointments a
		JOIN appointment_services aps ON aps.appointment_id = a.id
		JOIN services s ON s.id = aps.service_id
		WHERE a.company_id = $1
		  AND a.scheduled_date >= $2 AND a.scheduled_date < $3
		  AND a.status <> $4
		GROUP BY a.id, a.employee_id, a.scheduled_date, a.status
		ORDER BY a.scheduled_date
	`

	rows, err := r.db.Query(ctx, query, companyID, start, end, domain.AppointmentStatusCanceled)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar agenda: %w", err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		var appointment domain.Appointment
		err := rows.Scan(
			&appointment.ID,
			&appointment.EmployeeID,
			&appointment.ScheduledDate,
			&appointment.Status,
			&appointment.Duration,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler agenda: %w", err)
		}
		appointments = append(appointments, appointment)
	}

	return appointments, rows.Err()
}

func (r *AppointmentRepo) MonthReport(ctx context.Context, companyID string, start, end time.Time) ([]domain.MonthReportRow, error) {
	query := `
		SELECT s.id, s.name, COUNT(DISTINCT a.id), COALESCE(SUM(aps.paid_amount), 0)
		FROM appointments a
		JOIN appointment_services aps ON aps.appointment_id = a.id
		JOIN services s ON s.id = aps.service_id
		WHERE a.company_id = $1
		  AND a.scheduled_date >= $2 AND a.scheduled_date < $3
		  AND a.status = $4
		GROUP BY s.id, s.name
		ORDER BY s.name
	`

	rows, err := r.db.Query(ctx, query, companyID, start, end, domain.AppointmentStatusDone)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar relatório: %w", err)
	}
	defer rows.Close()

	var report []domain.MonthReportRow
	for rows.Next() {
		var row domain.MonthReportRow
		if err := rows.Scan(&row.ServiceID, &row.ServiceName, &row.Appointments, &row.TotalPaid); err != nil {
			return nil, fmt.Errorf("erro ao ler relatório: %w", err)
		}
		report = append(report, row)
	}

	return report, rows.Err()
}

// attachServices carrega os serviços dos agendamentos numa única consulta e
// soma a duração derivada de cada um.
func (r *AppointmentRepo) attachServices(ctx context.Context, appointments []domain.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}

	ids := make([]string, len(appointments))
	index := make(map[string]*domain.Appointment, len(appointments))
	for i := range appointments {
		ids[i] = appointments[i].ID
		index[appointments[i].ID] = &appointments[i]
	}

	query := `
		SELECT aps.appointment_id, aps.service_id, aps.paid_amount,
		       s.id, s.company_id, s.name, s.price, s.duration, COALESCE(s.description, ''), s.active, s.created_at, s.updated_at
		FROM appointment_services aps
		JOIN services s ON s.id = aps.service_id
		WHERE aps.appointment_id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("erro ao buscar serviços dos agendamentos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var as domain.AppointmentService
		var service domain.Service
		err := rows.Scan(
			&as.AppointmentID,
			&as.ServiceID,
			&as.PaidAmount,
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
			return fmt.Errorf("erro ao ler serviço do agendamento: %w", err)
		}

		as.Service = &service
		if appointment, ok := index[as.AppointmentID]; ok {
			appointment.Services = append(appointment.Services, as)
			appointment.Duration += service.Duration
		}
	}

	return rows.Err()
}
