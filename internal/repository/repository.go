package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"agendo/internal/domain"
)

// DB é o recorte de *pgxpool.Pool que os repositórios usam. Os testes
// substituem por um pool do pgxmock.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repositories struct {
	User        UserRepository
	Auth        AuthRepository
	Company     CompanyRepository
	Customer    CustomerRepository
	Service     ServiceRepository
	Employee    EmployeeRepository
	Appointment AppointmentRepository
	Bot         BotRepository
	BlockList   BlockListRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Auth:        NewAuthRepository(db),
		Company:     NewCompanyRepository(db),
		Customer:    NewCustomerRepository(db),
		Service:     NewServiceRepository(db),
		Employee:    NewEmployeeRepository(db),
		Appointment: NewAppointmentRepository(db),
		Bot:         NewBotRepository(db),
		BlockList:   NewBlockListRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO, passwordHash string) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID string) error
}

type CompanyRepository interface {
	Create(ctx context.Context, name, phone, email string) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	Update(ctx context.Context, id string, dto domain.UpdateCompanyDTO) error
	UpdatePhoto(ctx context.Context, id string, photoURL string) error
}

type CustomerRepository interface {
	Create(ctx context.Context, dto domain.CreateCustomerDTO) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	Update(ctx context.Context, id string, dto domain.UpdateCustomerDTO) error
	List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, int, error)
	LinkToCompany(ctx context.Context, companyID, customerID string) error
	UnlinkFromCompany(ctx context.Context, companyID, customerID string) error
}

type ServiceRepository interface {
	Create(ctx context.Context, companyID string, dto domain.CreateServiceDTO) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	GetByIDs(ctx context.Context, companyID string, ids []string) ([]domain.Service, error)
	Update(ctx context.Context, id string, dto domain.UpdateServiceDTO) error
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, int, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, companyID string, dto domain.CreateEmployeeDTO) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	Update(ctx context.Context, id string, dto domain.UpdateEmployeeDTO) error
	List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error)
	ReplaceWorkWeeks(ctx context.Context, employeeID string, entries []domain.WorkWeekEntryDTO) error
	GetWorkWeeks(ctx context.Context, employeeID string) ([]domain.WorkWeek, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, employeeID string, dto domain.CreateAppointmentDTO, scheduledDate time.Time, prices map[string]float64) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	Update(ctx context.Context, id string, employeeID *string, scheduledDate *time.Time, dto domain.UpdateAppointmentDTO, prices map[string]float64) error
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, updatedUserID string) error
	Finish(ctx context.Context, id string, dto domain.FinishAppointmentDTO, paidAmounts map[string]float64, updatedUserID string) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
	ListBetween(ctx context.Context, companyID string, start, end time.Time) ([]domain.Appointment, error)
	MonthReport(ctx context.Context, companyID string, start, end time.Time) ([]domain.MonthReportRow, error)
}

type BotRepository interface {
	GetByCompanyID(ctx context.Context, companyID string) (*domain.BotParameters, error)
	Upsert(ctx context.Context, companyID string, dto domain.UpdateBotParametersDTO) (*domain.BotParameters, error)
}

type BlockListRepository interface {
	Block(ctx context.Context, dto domain.BlockNumberDTO) (*domain.BlockedNumber, error)
	Unblock(ctx context.Context, phoneNumber string) error
	GetByPhone(ctx context.Context, phoneNumber string) (*domain.BlockedNumber, error)
}
