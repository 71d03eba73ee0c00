package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agendo/config"
	"agendo/internal/domain"
	"agendo/internal/scheduling"
)

func ptr[T any](v T) *T {
	return &v
}

type apptRepoStub struct {
	appointment *domain.Appointment
	between     []domain.Appointment

	createdEmployeeID string
	createdPrices     map[string]float64
	updatedEmployeeID *string
	updatedDate       *time.Time
	finishDTO         *domain.FinishAppointmentDTO
	finishPaid        map[string]float64
	statusSet         domain.AppointmentStatus
}

func (r *apptRepoStub) Create(_ context.Context, employeeID string, _ domain.CreateAppointmentDTO, _ time.Time, prices map[string]float64) (string, error) {
	r.createdEmployeeID = employeeID
	r.createdPrices = prices
	return "novo-agendamento", nil
}

func (r *apptRepoStub) GetByID(_ context.Context, _ string) (*domain.Appointment, error) {
	return r.appointment, nil
}

func (r *apptRepoStub) Update(_ context.Context, _ string, employeeID *string, scheduledDate *time.Time, _ domain.UpdateAppointmentDTO, _ map[string]float64) error {
	r.updatedEmployeeID = employeeID
	r.updatedDate = scheduledDate
	return nil
}

func (r *apptRepoStub) UpdateStatus(_ context.Context, _ string, status domain.AppointmentStatus, _ string) error {
	r.statusSet = status
	return nil
}

func (r *apptRepoStub) Finish(_ context.Context, _ string, dto domain.FinishAppointmentDTO, paidAmounts map[string]float64, _ string) error {
	r.finishDTO = &dto
	r.finishPaid = paidAmounts
	return nil
}

func (r *apptRepoStub) List(_ context.Context, _ domain.AppointmentFilter) ([]domain.Appointment, error) {
	return nil, nil
}

func (r *apptRepoStub) CountByFilter(_ context.Context, _ domain.AppointmentFilter) (int, error) {
	return 0, nil
}

func (r *apptRepoStub) ListBetween(_ context.Context, _ string, _, _ time.Time) ([]domain.Appointment, error) {
	return r.between, nil
}

func (r *apptRepoStub) MonthReport(_ context.Context, _ string, _, _ time.Time) ([]domain.MonthReportRow, error) {
	return nil, nil
}

type companyRepoStub struct {
	company *domain.Company
}

func (r *companyRepoStub) Create(_ context.Context, _, _, _ string) (string, error) {
	return "", nil
}

func (r *companyRepoStub) GetByID(_ context.Context, _ string) (*domain.Company, error) {
	return r.company, nil
}

func (r *companyRepoStub) Update(_ context.Context, _ string, _ domain.UpdateCompanyDTO) error {
	return nil
}

func (r *companyRepoStub) UpdatePhoto(_ context.Context, _ string, _ string) error {
	return nil
}

type customerRepoStub struct {
	customer *domain.Customer
	byPhone  *domain.Customer
}

func (r *customerRepoStub) Create(_ context.Context, _ domain.CreateCustomerDTO) (string, error) {
	return "", nil
}

func (r *customerRepoStub) GetByID(_ context.Context, _ string) (*domain.Customer, error) {
	return r.customer, nil
}

func (r *customerRepoStub) GetByPhone(_ context.Context, _ string) (*domain.Customer, error) {
	return r.byPhone, nil
}

func (r *customerRepoStub) Update(_ context.Context, _ string, _ domain.UpdateCustomerDTO) error {
	return nil
}

func (r *customerRepoStub) List(_ context.Context, _ domain.CustomerFilter) ([]domain.Customer, int, error) {
	return nil, 0, nil
}

func (r *customerRepoStub) LinkToCompany(_ context.Context, _, _ string) error {
	return nil
}

func (r *customerRepoStub) UnlinkFromCompany(_ context.Context, _, _ string) error {
	return nil
}

type serviceRepoStub struct {
	services []domain.Service
}

func (r *serviceRepoStub) Create(_ context.Context, _ string, _ domain.CreateServiceDTO) (string, error) {
	return "", nil
}

func (r *serviceRepoStub) GetByID(_ context.Context, _ string) (*domain.Service, error) {
	if len(r.services) == 0 {
		return nil, nil
	}
	return &r.services[0], nil
}

func (r *serviceRepoStub) GetByIDs(_ context.Context, _ string, _ []string) ([]domain.Service, error) {
	return r.services, nil
}

func (r *serviceRepoStub) Update(_ context.Context, _ string, _ domain.UpdateServiceDTO) error {
	return nil
}

func (r *serviceRepoStub) Deactivate(_ context.Context, _ string) error {
	return nil
}

func (r *serviceRepoStub) List(_ context.Context, _ domain.ServiceFilter) ([]domain.Service, int, error) {
	return r.services, len(r.services), nil
}

type employeeRepoStub struct {
	employees []domain.Employee
	replaced  []domain.WorkWeekEntryDTO
}

func (r *employeeRepoStub) Create(_ context.Context, _ string, _ domain.CreateEmployeeDTO) (string, error) {
	return "", nil
}

func (r *employeeRepoStub) GetByID(_ context.Context, _ string) (*domain.Employee, error) {
	if len(r.employees) == 0 {
		return nil, nil
	}
	return &r.employees[0], nil
}

func (r *employeeRepoStub) Update(_ context.Context, _ string, _ domain.UpdateEmployeeDTO) error {
	return nil
}

func (r *employeeRepoStub) List(_ context.Context, _ domain.EmployeeFilter) ([]domain.Employee, error) {
	return r.employees, nil
}

func (r *employeeRepoStub) ReplaceWorkWeeks(_ context.Context, _ string, entries []domain.WorkWeekEntryDTO) error {
	r.replaced = entries
	return nil
}

func (r *employeeRepoStub) GetWorkWeeks(_ context.Context, _ string) ([]domain.WorkWeek, error) {
	return nil, nil
}

type botRepoStub struct {
	params *domain.BotParameters
}

func (r *botRepoStub) GetByCompanyID(_ context.Context, _ string) (*domain.BotParameters, error) {
	return r.params, nil
}

func (r *botRepoStub) Upsert(_ context.Context, _ string, _ domain.UpdateBotParametersDTO) (*domain.BotParameters, error) {
	return r.params, nil
}

type blockRepoStub struct {
	blocked *domain.BlockedNumber
}

func (r *blockRepoStub) Block(_ context.Context, _ domain.BlockNumberDTO) (*domain.BlockedNumber, error) {
	return r.blocked, nil
}

func (r *blockRepoStub) Unblock(_ context.Context, _ string) error {
	return nil
}

func (r *blockRepoStub) GetByPhone(_ context.Context, _ string) (*domain.BlockedNumber, error) {
	return r.blocked, nil
}

type appointmentFixture struct {
	repo      *apptRepoStub
	customers *customerRepoStub
	services  *serviceRepoStub
	employees *employeeRepoStub
	blocklist *blockRepoStub
	svc       *AppointmentServiceImpl
}

func fullWeek(employeeID string) []domain.WorkWeek {
	weeks := make([]domain.WorkWeek, 0, len(domain.WeekDays))
	for _, day := range domain.WeekDays {
		weeks = append(weeks, domain.WorkWeek{
			EmployeeID: employeeID,
			DayOfWeek:  day,
			StartTime:  "08:00",
			EndTime:    "18:00",
		})
	}
	return weeks
}

func newAppointmentFixture() *appointmentFixture {
	repo := &apptRepoStub{}
	customers := &customerRepoStub{
		customer: &domain.Customer{ID: "cli-1", Name: "Maria", Phone: "+5511987654321"},
	}
	services := &serviceRepoStub{
		services: []domain.Service{
			{ID: "svc-1", CompanyID: "emp-1", Name: "Corte", Price: 100, Duration: 30, Active: true},
		},
	}
	employees := &employeeRepoStub{
		employees: []domain.Employee{
			{ID: "func-1", CompanyID: "emp-1", Name: "João", Active: true, WorkWeeks: fullWeek("func-1")},
		},
	}
	blocklist := &blockRepoStub{}

	svc := NewAppointmentService(
		repo,
		&companyRepoStub{company: &domain.Company{ID: "emp-1", AppointmentDays: 7, AppointmentInterval: 30}},
		customers,
		services,
		employees,
		&botRepoStub{},
		blocklist,
		config.SchedulingConfig{DefaultHorizonDays: 7, DefaultSlotInterval: 30, DefaultLeadTime: time.Hour},
		zap.NewNop(),
	)

	return &appointmentFixture{
		repo:      repo,
		customers: customers,
		services:  services,
		employees: employees,
		blocklist: blocklist,
		svc:       svc,
	}
}

// Amanhã está sempre dentro do horizonte e além da antecedência mínima.
func tomorrowAt(hour, minute int) time.Time {
	d := time.Now().AddDate(0, 0, 1)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.Local)
}

func TestAppointmentCreate(t *testing.T) {
	fx := newAppointmentFixture()

	id, err := fx.svc.Create(context.Background(), domain.CreateAppointmentDTO{
		CustomerID:    "cli-1",
		CompanyID:     "emp-1",
		ServiceIDs:    []string{"svc-1"},
		ScheduledDate: tomorrowAt(9, 0).Format("2006-01-02"),
		ScheduledHour: "09:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "novo-agendamento", id)
	assert.Equal(t, "func-1", fx.repo.createdEmployeeID)
	assert.Equal(t, map[string]float64{"svc-1": 100}, fx.repo.createdPrices)
}

func TestAppointmentCreateBlockedCustomer(t *testing.T) {
	fx := newAppointmentFixture()
	fx.blocklist.blocked = &domain.BlockedNumber{PhoneNumber: "+5511987654321"}

	_, err := fx.svc.Create(context.Background(), domain.CreateAppointmentDTO{
		CustomerID:    "cli-1",
		CompanyID:     "emp-1",
		ServiceIDs:    []string{"svc-1"},
		ScheduledDate: tomorrowAt(9, 0).Format("2006-01-02"),
		ScheduledHour: "09:00",
	})

	assert.EqualError(t, err, "este cliente está bloqueado para novos agendamentos")
}

func TestAppointmentCreateRejectsUnofferedHour(t *testing.T) {
	fx := newAppointmentFixture()

	cases := []struct {
		name string
		hour string
	}{
		{"fora da semana de trabalho", "07:00"},
		{"fora da granularidade da empresa", "09:15"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.svc.Create(context.Background(), domain.CreateAppointmentDTO{
				CustomerID:    "cli-1",
				CompanyID:     "emp-1",
				ServiceIDs:    []string{"svc-1"},
				ScheduledDate: tomorrowAt(9, 0).Format("2006-01-02"),
				ScheduledHour: tc.hour,
			})
			assert.EqualError(t, err, "horário indisponível")
		})
	}
}

func TestAppointmentCreateRejectsBusySlot(t *testing.T) {
	fx := newAppointmentFixture()
	fx.repo.between = []domain.Appointment{
		{ID: "ag-1", EmployeeID: "func-1", ScheduledDate: tomorrowAt(9, 0), Duration: 30},
	}

	_, err := fx.svc.Create(context.Background(), domain.CreateAppointmentDTO{
		CustomerID:    "cli-1",
		CompanyID:     "emp-1",
		ServiceIDs:    []string{"svc-1"},
		ScheduledDate: tomorrowAt(9, 0).Format("2006-01-02"),
		ScheduledHour: "09:00",
	})

	assert.EqualError(t, err, "horário indisponível")
}

func TestAppointmentCreateRejectsBadSlotFormat(t *testing.T) {
	fx := newAppointmentFixture()

	_, err := fx.svc.Create(context.Background(), domain.CreateAppointmentDTO{
		CustomerID:    "cli-1",
		CompanyID:     "emp-1",
		ServiceIDs:    []string{"svc-1"},
		ScheduledDate: "10/06/2026",
		ScheduledHour: "09:00",
	})
	assert.EqualError(t, err, "data inválida: use o formato AAAA-MM-DD")

	_, err = fx.svc.Create(context.Background(), domain.CreateAppointmentDTO{
		CustomerID:    "cli-1",
		CompanyID:     "emp-1",
		ServiceIDs:    []string{"svc-1"},
		ScheduledDate: tomorrowAt(9, 0).Format("2006-01-02"),
		ScheduledHour: "9h30",
	})
	assert.EqualError(t, err, "horário inválido: use o formato HH:MM")
}

// Remarcar sem mudar nada precisa passar: o próprio agendamento é ignorado
// no cálculo, senão ele bloquearia o horário que já ocupa.
func TestAppointmentUpdateIgnoresOwnSlot(t *testing.T) {
	fx := newAppointmentFixture()
	scheduled := tomorrowAt(9, 0)
	fx.repo.appointment = &domain.Appointment{
		ID:            "ag-1",
		CompanyID:     "emp-1",
		CustomerID:    "cli-1",
		EmployeeID:    "func-1",
		ScheduledDate: scheduled,
		Status:        domain.AppointmentStatusScheduled,
		Services:      []domain.AppointmentService{{AppointmentID: "ag-1", ServiceID: "svc-1"}},
	}
	fx.repo.between = []domain.Appointment{
		{ID: "ag-1", EmployeeID: "func-1", ScheduledDate: scheduled, Duration: 30},
	}

	err := fx.svc.Update(context.Background(), "ag-1", domain.UpdateAppointmentDTO{})

	require.NoError(t, err)
	require.NotNil(t, fx.repo.updatedEmployeeID)
	assert.Equal(t, "func-1", *fx.repo.updatedEmployeeID)
}

func TestAppointmentUpdateOnlyWhenScheduled(t *testing.T) {
	fx := newAppointmentFixture()
	fx.repo.appointment = &domain.Appointment{
		ID:        "ag-1",
		CompanyID: "emp-1",
		Status:    domain.AppointmentStatusDone,
	}

	err := fx.svc.Update(context.Background(), "ag-1", domain.UpdateAppointmentDTO{})
	assert.EqualError(t, err, "somente agendamentos em aberto podem ser alterados")
}

func TestAppointmentCancel(t *testing.T) {
	fx := newAppointmentFixture()
	fx.repo.appointment = &domain.Appointment{
		ID:        "ag-1",
		CompanyID: "emp-1",
		Status:    domain.AppointmentStatusScheduled,
	}

	require.NoError(t, fx.svc.Cancel(context.Background(), "ag-1", "user-1"))
	assert.Equal(t, domain.AppointmentStatusCanceled, fx.repo.statusSet)

	fx.repo.appointment.Status = domain.AppointmentStatusCanceled
	err := fx.svc.Cancel(context.Background(), "ag-1", "user-1")
	assert.EqualError(t, err, "somente agendamentos em aberto podem ser cancelados")
}

func TestAppointmentDoneRecomputesTotals(t *testing.T) {
	fx := newAppointmentFixture()
	fx.repo.appointment = &domain.Appointment{
		ID:        "ag-1",
		CompanyID: "emp-1",
		Status:    domain.AppointmentStatusScheduled,
	}
	fx.services.services = []domain.Service{
		{ID: "svc-1", CompanyID: "emp-1", Name: "Corte", Price: 100, Duration: 30, Active: true},
		{ID: "svc-2", CompanyID: "emp-1", Name: "Barba", Price: 50, Duration: 15, Active: true},
	}

	err := fx.svc.Done(context.Background(), "ag-1", domain.FinishAppointmentDTO{
		ServiceIDs:    []string{"svc-1", "svc-2"},
		PaymentType:   domain.PaymentTypePix,
		DiscountType:  ptr(domain.DiscountTypeAmount),
		DiscountValue: ptr(30.0),
		// O total enviado pelo cliente é ignorado e recalculado.
		TotalPaid: 999,
	}, "user-1")

	require.NoError(t, err)
	require.NotNil(t, fx.repo.finishDTO)
	assert.Equal(t, 120.0, fx.repo.finishDTO.TotalPaid)
	assert.Equal(t, domain.PaymentTypePix, fx.repo.finishDTO.PaymentType)
	require.NotNil(t, fx.repo.finishDTO.DiscountType)
	assert.Equal(t, domain.DiscountTypeAmount, *fx.repo.finishDTO.DiscountType)

	// Rateio proporcional ao preço de catálogo, fechando exato com o total.
	assert.Equal(t, map[string]float64{"svc-1": 80, "svc-2": 40}, fx.repo.finishPaid)
}

func TestAppointmentDoneDiscountValidation(t *testing.T) {
	cases := []struct {
		name     string
		dto      domain.FinishAppointmentDTO
		expected error
	}{
		{
			name: "valor sem tipo",
			dto: domain.FinishAppointmentDTO{
				ServiceIDs:    []string{"svc-1"},
				PaymentType:   domain.PaymentTypeCash,
				DiscountValue: ptr(10.0),
			},
			expected: scheduling.ErrDiscountTypeMissing,
		},
		{
			name: "valor zero",
			dto: domain.FinishAppointmentDTO{
				ServiceIDs:    []string{"svc-1"},
				PaymentType:   domain.PaymentTypeCash,
				DiscountType:  ptr(domain.DiscountTypeAmount),
				DiscountValue: ptr(0.0),
			},
			expected: scheduling.ErrDiscountZero,
		},
		{
			name: "desconto zera o subtotal",
			dto: domain.FinishAppointmentDTO{
				ServiceIDs:    []string{"svc-1"},
				PaymentType:   domain.PaymentTypeCash,
				DiscountType:  ptr(domain.DiscountTypeAmount),
				DiscountValue: ptr(100.0),
			},
			expected: scheduling.ErrDiscountInvalid,
		},
		{
			name: "percentual acima de 100",
			dto: domain.FinishAppointmentDTO{
				ServiceIDs:    []string{"svc-1"},
				PaymentType:   domain.PaymentTypeCash,
				DiscountType:  ptr(domain.DiscountTypePercentage),
				DiscountValue: ptr(120.0),
			},
			expected: scheduling.ErrDiscountInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newAppointmentFixture()
			fx.repo.appointment = &domain.Appointment{
				ID:        "ag-1",
				CompanyID: "emp-1",
				Status:    domain.AppointmentStatusScheduled,
			}

			err := fx.svc.Done(context.Background(), "ag-1", tc.dto, "user-1")
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestAppointmentDoneOnlyWhenScheduled(t *testing.T) {
	fx := newAppointmentFixture()
	fx.repo.appointment = &domain.Appointment{
		ID:        "ag-1",
		CompanyID: "emp-1",
		Status:    domain.AppointmentStatusCanceled,
	}

	err := fx.svc.Done(context.Background(), "ag-1", domain.FinishAppointmentDTO{
		ServiceIDs:  []string{"svc-1"},
		PaymentType: domain.PaymentTypePix,
	}, "user-1")
	assert.EqualError(t, err, "somente agendamentos em aberto podem ser concluídos")
}

func TestAppointmentDoneRejectsForeignServices(t *testing.T) {
	fx := newAppointmentFixture()
	fx.repo.appointment = &domain.Appointment{
		ID:        "ag-1",
		CompanyID: "emp-1",
		Status:    domain.AppointmentStatusScheduled,
	}

	// O repositório devolve menos serviços do que os pedidos: algum id não
	// pertence à empresa ou está inativo.
	err := fx.svc.Done(context.Background(), "ag-1", domain.FinishAppointmentDTO{
		ServiceIDs:  []string{"svc-1", "svc-de-outra-empresa"},
		PaymentType: domain.PaymentTypePix,
	}, "user-1")
	assert.EqualError(t, err, "um ou mais serviços são inválidos para esta empresa")
}

func TestAppointmentAvailabilityOffersSlot(t *testing.T) {
	fx := newAppointmentFixture()

	result, err := fx.svc.Availability(context.Background(), domain.AvailabilityDTO{
		CompanyID:  "emp-1",
		ServiceIDs: []string{"svc-1"},
	})

	require.NoError(t, err)
	hours := scheduling.HoursForDate(result, tomorrowAt(9, 0).Format("02/01/2006"))
	assert.Contains(t, hours, "09:00")
	assert.NotContains(t, hours, "07:00")
}
