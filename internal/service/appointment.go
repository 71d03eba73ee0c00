package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"agendo/config"
	"agendo/internal/domain"
	"agendo/internal/repository"
	"agendo/internal/scheduling"
	"agendo/pkg/validator"
)

type AppointmentServiceImpl struct {
	repo          repository.AppointmentRepository
	companyRepo   repository.CompanyRepository
	customerRepo  repository.CustomerRepository
	serviceRepo   repository.ServiceRepository
	employeeRepo  repository.EmployeeRepository
	botRepo       repository.BotRepository
	blockListRepo repository.BlockListRepository
	cfg           config.SchedulingConfig
	logger        *zap.Logger
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	serviceRepo repository.ServiceRepository,
	employeeRepo repository.EmployeeRepository,
	botRepo repository.BotRepository,
	blockListRepo repository.BlockListRepository,
	cfg config.SchedulingConfig,
	logger *zap.Logger,
) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:          repo,
		companyRepo:   companyRepo,
		customerRepo:  customerRepo,
		serviceRepo:   serviceRepo,
		employeeRepo:  employeeRepo,
		botRepo:       botRepo,
		blockListRepo: blockListRepo,
		cfg:           cfg,
		logger:        logger,
	}
}

// Create agenda um novo atendimento. O horário pedido é conferido contra a
// disponibilidade calculada na hora, e o funcionário é escolhido pelo
// servidor entre os livres no horário.
func (s *AppointmentServiceImpl) Create(ctx context.Context, dto domain.CreateAppointmentDTO) (string, error) {
	customer, err := s.customerRepo.GetByID(ctx, dto.CustomerID)
	if err != nil {
		s.logger.Error("erro ao buscar cliente", zap.String("customerId", dto.CustomerID), zap.Error(err))
		return "", errors.New("erro ao criar agendamento")
	}
	if customer == nil {
		return "", errors.New("cliente não encontrado")
	}

	blocked, err := s.blockListRepo.GetByPhone(ctx, customer.Phone)
	if err != nil {
		s.logger.Error("erro ao consultar bloqueio", zap.String("phone", customer.Phone), zap.Error(err))
		return "", errors.New("erro ao criar agendamento")
	}
	if blocked != nil {
		return "", errors.New("este cliente está bloqueado para novos agendamentos")
	}

	slot, err := parseSlot(dto.ScheduledDate, dto.ScheduledHour)
	if err != nil {
		return "", err
	}

	params, services, err := s.buildAvailabilityParams(ctx, dto.CompanyID, dto.ServiceIDs, nil, time.Now())
	if err != nil {
		return "", err
	}

	employeeID, err := s.claimSlot(params, slot, "")
	if err != nil {
		return "", err
	}

	id, err := s.repo.Create(ctx, employeeID, dto, slot, catalogPrices(services))
	if err != nil {
		s.logger.Error("erro ao criar agendamento", zap.Error(err))
		return "", errors.New("erro ao criar agendamento")
	}

	return id, nil
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("erro ao buscar agendamento", zap.String("id", id), zap.Error(err))
		return nil, errors.New("erro ao buscar agendamento")
	}
	if appointment == nil {
		return nil, errors.New("agendamento não encontrado")
	}
	return appointment, nil
}

// Update remarca ou altera um agendamento em aberto. A disponibilidade é
// recalculada ignorando o próprio agendamento, senão ele bloquearia o seu
// horário atual.
func (s *AppointmentServiceImpl) Update(ctx context.Context, id string, dto domain.UpdateAppointmentDTO) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("erro ao buscar agendamento", zap.String("id", id), zap.Error(err))
		return errors.New("erro ao atualizar agendamento")
	}
	if existing == nil {
		return errors.New("agendamento não encontrado")
	}
	if existing.Status != domain.AppointmentStatusScheduled {
		return errors.New("somente agendamentos em aberto podem ser alterados")
	}

	if dto.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *dto.CustomerID)
		if err != nil || customer == nil {
			return errors.New("cliente não encontrado")
		}
		blocked, err := s.blockListRepo.GetByPhone(ctx, customer.Phone)
		if err == nil && blocked != nil {
			return errors.New("este cliente está bloqueado para novos agendamentos")
		}
	}

	serviceIDs := dto.ServiceIDs
	if len(serviceIDs) == 0 {
		serviceIDs = make([]string, 0, len(existing.Services))
		for _, as := range existing.Services {
			serviceIDs = append(serviceIDs, as.ServiceID)
		}
	}

	date := existing.ScheduledDate.Format("2006-01-02")
	hour := existing.ScheduledDate.Format("15:04")
	if dto.ScheduledDate != nil {
		date = *dto.ScheduledDate
	}
	if dto.ScheduledHour != nil {
		hour = *dto.ScheduledHour
	}

	slot, err := parseSlot(date, hour)
	if err != nil {
		return err
	}

	params, services, err := s.buildAvailabilityParams(ctx, existing.CompanyID, serviceIDs, &id, time.Now())
	if err != nil {
		return err
	}

	employeeID, err := s.claimSlot(params, slot, existing.EmployeeID)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, &employeeID, &slot, dto, catalogPrices(services)); err != nil {
		s.logger.Error("erro ao atualizar agendamento", zap.String("id", id), zap.Error(err))
		return errors.New("erro ao atualizar agendamento")
	}

	return nil
}

func (s *AppointmentServiceImpl) Search(ctx context.Context, dto domain.SearchAppointmentDTO, limit, offset int) ([]domain.Appointment, int, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	filter := domain.AppointmentFilter{
		CompanyID:  &dto.CompanyID,
		Status:     dto.Status,
		ServiceIDs: dto.ServiceIDs,
		StartDate:  &dto.StartDate,
		EndDate:    &dto.EndDate,
		Limit:      limit,
		Offset:     offset,
	}

	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("erro ao buscar agendamentos", zap.Error(err))
		return nil, 0, errors.New("erro ao buscar agendamentos")
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("erro ao contar agendamentos", zap.Error(err))
		return nil, 0, errors.New("erro ao buscar agendamentos")
	}

	return appointments, total, nil
}

// Availability calcula as datas e horários livres para a seleção de
// serviços. Ao editar um agendamento, o id dele entra em
// editingAppointmentId para liberar o horário que ele ocupa hoje.
func (s *AppointmentServiceImpl) Availability(ctx context.Context, dto domain.AvailabilityDTO) ([]domain.DateAvailability, error) {
	params, _, err := s.buildAvailabilityParams(ctx, dto.CompanyID, dto.ServiceIDs, dto.EditingAppointmentID, time.Now())
	if err != nil {
		return nil, err
	}

	return scheduling.ComputeAvailability(params), nil
}

func (s *AppointmentServiceImpl) Cancel(ctx context.Context, id, userID string) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("erro ao buscar agendamento", zap.String("id", id), zap.Error(err))
		return errors.New("erro ao cancelar agendamento")
	}
	if appointment == nil {
		return errors.New("agendamento não encontrado")
	}
	if appointment.Status != domain.AppointmentStatusScheduled {
		return errors.New("somente agendamentos em aberto podem ser cancelados")
	}

	if err := s.repo.UpdateStatus(ctx, id, domain.AppointmentStatusCanceled, userID); err != nil {
		s.logger.Error("erro ao cancelar agendamento", zap.String("id", id), zap.Error(err))
		return errors.New("erro ao cancelar agendamento")
	}

	return nil
}

// Done conclui o agendamento com pagamento e desconto. O desconto, quando
// enviado, passa pela validação estrita do fechamento; o total e o rateio
// por serviço são sempre recalculados no servidor.
func (s *AppointmentServiceImpl) Done(ctx context.Context, id string, dto domain.FinishAppointmentDTO, userID string) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("erro ao buscar agendamento", zap.String("id", id), zap.Error(err))
		return errors.New("erro ao concluir agendamento")
	}
	if appointment == nil {
		return errors.New("agendamento não encontrado")
	}
	if appointment.Status != domain.AppointmentStatusScheduled {
		return errors.New("somente agendamentos em aberto podem ser concluídos")
	}

	services, err := s.resolveServices(ctx, appointment.CompanyID, dto.ServiceIDs)
	if err != nil {
		return err
	}

	var discount *scheduling.Discount
	if dto.DiscountType != nil || dto.DiscountValue != nil {
		requested := scheduling.Discount{}
		if dto.DiscountType != nil {
			requested.Type = *dto.DiscountType
		}
		if dto.DiscountValue != nil {
			requested.Value = *dto.DiscountValue
		}
		if err := scheduling.ValidateDiscount(scheduling.Subtotal(services), &requested); err != nil {
			return err
		}
		discount = &requested
	}

	payload := scheduling.BuildFinishPayload(services, dto.PaymentType, discount)
	total := scheduling.ApplyDiscount(scheduling.Subtotal(services), discount)
	paidAmounts := scheduling.AllocateTotal(services, total)

	if err := s.repo.Finish(ctx, id, payload, paidAmounts, userID); err != nil {
		s.logger.Error("erro ao concluir agendamento", zap.String("id", id), zap.Error(err))
		return errors.New("erro ao concluir agendamento")
	}

	return nil
}

// buildAvailabilityParams reúne tudo de que o motor de disponibilidade
// precisa: horizonte e granularidade da empresa, antecedência mínima do bot,
// duração total dos serviços e a agenda de cada funcionário ativo.
func (s *AppointmentServiceImpl) buildAvailabilityParams(
	ctx context.Context,
	companyID string,
	serviceIDs []string,
	excludeAppointmentID *string,
	from time.Time,
) (scheduling.AvailabilityParams, []domain.Service, error) {
	var params scheduling.AvailabilityParams

	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		s.logger.Error("erro ao buscar empresa", zap.String("companyId", companyID), zap.Error(err))
		return params, nil, errors.New("erro ao calcular disponibilidade")
	}
	if company == nil {
		return params, nil, errors.New("empresa não encontrada")
	}

	services, err := s.resolveServices(ctx, companyID, serviceIDs)
	if err != nil {
		return params, nil, err
	}

	duration := 0
	for _, service := range services {
		duration += service.Duration
	}

	horizon := company.AppointmentDays
	if horizon <= 0 {
		horizon = s.cfg.DefaultHorizonDays
	}
	interval := company.AppointmentInterval
	if interval <= 0 {
		interval = s.cfg.DefaultSlotInterval
	}

	leadTime := s.cfg.DefaultLeadTime
	bot, err := s.botRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		s.logger.Warn("erro ao buscar parâmetros do bot", zap.String("companyId", companyID), zap.Error(err))
	}
	if bot != nil && bot.Restricao > 0 {
		leadTime = time.Duration(bot.Restricao) * time.Hour
	}

	active := true
	employees, err := s.employeeRepo.List(ctx, domain.EmployeeFilter{CompanyID: &companyID, Active: &active})
	if err != nil {
		s.logger.Error("erro ao listar funcionários", zap.String("companyId", companyID), zap.Error(err))
		return params, nil, errors.New("erro ao calcular disponibilidade")
	}

	dayStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	busyByEmployee, err := s.busyIntervals(ctx, companyID, dayStart, dayStart.AddDate(0, 0, horizon), excludeAppointmentID)
	if err != nil {
		return params, nil, err
	}

	agendas := make([]scheduling.EmployeeAgenda, 0, len(employees))
	for _, employee := range employees {
		agendas = append(agendas, scheduling.EmployeeAgenda{
			EmployeeID: employee.ID,
			Week:       scheduling.GroupByDay(employee.WorkWeeks),
			Busy:       busyByEmployee[employee.ID],
		})
	}

	params = scheduling.AvailabilityParams{
		From:        from,
		HorizonDays: horizon,
		Interval:    interval,
		Duration:    duration,
		LeadTime:    leadTime,
		Agendas:     agendas,
	}

	return params, services, nil
}

func (s *AppointmentServiceImpl) busyIntervals(
	ctx context.Context,
	companyID string,
	start, end time.Time,
	excludeAppointmentID *string,
) (map[string][]scheduling.BusyInterval, error) {
	appointments, err := s.repo.ListBetween(ctx, companyID, start, end)
	if err != nil {
		s.logger.Error("erro ao carregar agenda", zap.String("companyId", companyID), zap.Error(err))
		return nil, errors.New("erro ao calcular disponibilidade")
	}

	busy := make(map[string][]scheduling.BusyInterval)
	for _, appointment := range appointments {
		if excludeAppointmentID != nil && appointment.ID == *excludeAppointmentID {
			continue
		}
		busy[appointment.EmployeeID] = append(busy[appointment.EmployeeID], scheduling.BusyInterval{
			Start: appointment.ScheduledDate,
			End:   appointment.ScheduledDate.Add(time.Duration(appointment.Duration) * time.Minute),
		})
	}

	return busy, nil
}

// claimSlot confirma que o horário pedido é um dos ofertados pelo cálculo de
// disponibilidade e escolhe o funcionário. O atual é mantido quando continua
// livre; senão o primeiro disponível assume.
func (s *AppointmentServiceImpl) claimSlot(params scheduling.AvailabilityParams, slot time.Time, preferredEmployeeID string) (string, error) {
	offered := scheduling.HoursForDate(scheduling.ComputeAvailability(params), slot.Format("02/01/2006"))
	hour := slot.Format("15:04")
	found := false
	for _, available := range offered {
		if available == hour {
			found = true
			break
		}
	}
	if !found {
		return "", errors.New("horário indisponível")
	}

	free := scheduling.FreeEmployeesAt(params, slot)
	if len(free) == 0 {
		return "", errors.New("horário indisponível")
	}

	for _, employeeID := range free {
		if employeeID == preferredEmployeeID {
			return employeeID, nil
		}
	}
	return free[0], nil
}

func (s *AppointmentServiceImpl) resolveServices(ctx context.Context, companyID string, serviceIDs []string) ([]domain.Service, error) {
	unique := make([]string, 0, len(serviceIDs))
	seen := make(map[string]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	services, err := s.serviceRepo.GetByIDs(ctx, companyID, unique)
	if err != nil {
		s.logger.Error("erro ao buscar serviços", zap.String("companyId", companyID), zap.Error(err))
		return nil, errors.New("erro ao buscar serviços")
	}
	if len(services) != len(unique) {
		return nil, errors.New("um ou mais serviços são inválidos para esta empresa")
	}

	return services, nil
}

func catalogPrices(services []domain.Service) map[string]float64 {
	prices := make(map[string]float64, len(services))
	for _, service := range services {
		prices[service.ID] = service.Price
	}
	return prices
}

func parseSlot(date, hour string) (time.Time, error) {
	if !validator.ValidateDate(date) {
		return time.Time{}, errors.New("data inválida: use o formato AAAA-MM-DD")
	}
	if !validator.ValidateTime(hour) {
		return time.Time{}, errors.New("horário inválido: use o formato HH:MM")
	}

	parsed, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hour, time.Local)
	if err != nil {
		return time.Time{}, errors.New("data ou horário inválido")
	}
	return parsed, nil
}
