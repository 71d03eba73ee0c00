package service

import (
	"context"

	"go.uber.org/zap"

	"agendo/config"
	"agendo/internal/domain"
	"agendo/internal/repository"
	"agendo/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
}

type Services struct {
	Auth        AuthService
	User        UserService
	Company     CompanyService
	Customer    CustomerService
	Catalog     CatalogService
	Employee    EmployeeService
	Appointment AppointmentService
	Bot         BotService
	BotFlow     BotFlowService
}

func NewServices(deps Deps) *Services {
	appointment := NewAppointmentService(
		deps.Repos.Appointment,
		deps.Repos.Company,
		deps.Repos.Customer,
		deps.Repos.Service,
		deps.Repos.Employee,
		deps.Repos.Bot,
		deps.Repos.BlockList,
		deps.Config.Scheduling,
		deps.Logger,
	)

	return &Services{
		Auth:        NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Repos.Company, deps.Config.JWT, deps.Logger),
		User:        NewUserService(deps.Repos.User, deps.Logger),
		Company:     NewCompanyService(deps.Repos.Company, deps.Repos.Appointment, deps.FileStorage, deps.Logger),
		Customer:    NewCustomerService(deps.Repos.Customer, deps.Repos.BlockList, deps.Logger),
		Catalog:     NewCatalogService(deps.Repos.Service, deps.Logger),
		Employee:    NewEmployeeService(deps.Repos.Employee, deps.Logger),
		Appointment: appointment,
		Bot:         NewBotService(deps.Repos.Bot, deps.Repos.Company, deps.Logger),
		BotFlow:     NewBotFlowService(appointment, deps.Repos.Bot, deps.Repos.Customer, deps.Repos.BlockList, deps.Logger),
	}
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (string, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (userID, companyID string, err error)
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id string, dto domain.PasswordUpdateDTO) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.User, error)
}

type CompanyService interface {
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	Update(ctx context.Context, id string, dto domain.UpdateCompanyDTO) error
	UploadPhoto(ctx context.Context, id string, photo []byte, filename string) (string, error)
	MonthReport(ctx context.Context, id string, dto domain.MonthReportRequest) (*domain.MonthReport, error)
}

type CustomerService interface {
	Create(ctx context.Context, companyID string, dto domain.CreateCustomerDTO) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	Update(ctx context.Context, id string, dto domain.UpdateCustomerDTO) error
	List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, int, error)
	RemoveFromCompany(ctx context.Context, companyID, customerID string) error
	BlockNumber(ctx context.Context, dto domain.BlockNumberDTO) (*domain.BlockedNumber, error)
	UnblockNumber(ctx context.Context, phoneNumber string) error
}

// CatalogService administra o catálogo de serviços oferecidos pela empresa.
type CatalogService interface {
	Create(ctx context.Context, companyID string, dto domain.CreateServiceDTO) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	Update(ctx context.Context, id string, dto domain.UpdateServiceDTO) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, int, error)
}

type EmployeeService interface {
	Create(ctx context.Context, companyID string, dto domain.CreateEmployeeDTO) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	Update(ctx context.Context, id string, dto domain.UpdateEmployeeDTO) error
	List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error)
	UpdateWorkWeek(ctx context.Context, employeeID string, dto domain.UpdateWorkWeeksDTO) error
}

type AppointmentService interface {
	Create(ctx context.Context, dto domain.CreateAppointmentDTO) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	Update(ctx context.Context, id string, dto domain.UpdateAppointmentDTO) error
	Search(ctx context.Context, dto domain.SearchAppointmentDTO, limit, offset int) ([]domain.Appointment, int, error)
	Availability(ctx context.Context, dto domain.AvailabilityDTO) ([]domain.DateAvailability, error)
	Cancel(ctx context.Context, id, userID string) error
	Done(ctx context.Context, id string, dto domain.FinishAppointmentDTO, userID string) error
}

type BotService interface {
	GetByCompanyID(ctx context.Context, companyID string) (*domain.BotParameters, error)
	Update(ctx context.Context, companyID string, dto domain.UpdateBotParametersDTO) (*domain.BotParameters, error)
}

// BotFlowService conduz o fluxo de agendamento do chatbot: escolha de
// serviços, depois data, depois horário, e confirmação. Uma conversa é
// identificada pelo par empresa + telefone do cliente.
type BotFlowService interface {
	Start(ctx context.Context, companyID, phone string) error
	ChooseServices(ctx context.Context, companyID, phone string, serviceIDs []string) ([]string, error)
	ChooseDate(ctx context.Context, companyID, phone, date string) ([]string, error)
	ChooseHour(ctx context.Context, companyID, phone, hour string) error
	Confirm(ctx context.Context, companyID, phone string) (string, error)
	Abort(companyID, phone string)
}
