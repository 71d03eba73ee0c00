package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"agendo/internal/domain"
	"agendo/internal/repository"
	"agendo/internal/scheduling"
	"agendo/pkg/validator"
)

// flowSession é o estado de uma conversa de agendamento em andamento. O
// picker garante a ordem serviços → data → horário e descarta respostas de
// disponibilidade que chegarem atrasadas.
type flowSession struct {
	mu         sync.Mutex
	picker     *scheduling.AvailabilityPicker
	customerID string
	companyID  string
}

type BotFlowServiceImpl struct {
	appointments  AppointmentService
	botRepo       repository.BotRepository
	customerRepo  repository.CustomerRepository
	blockListRepo repository.BlockListRepository
	logger        *zap.Logger

	mu       sync.Mutex
	sessions map[string]*flowSession
}

func NewBotFlowService(
	appointments AppointmentService,
	botRepo repository.BotRepository,
	customerRepo repository.CustomerRepository,
	blockListRepo repository.BlockListRepository,
	logger *zap.Logger,
) *BotFlowServiceImpl {
	return &BotFlowServiceImpl{
		appointments:  appointments,
		botRepo:       botRepo,
		customerRepo:  customerRepo,
		blockListRepo: blockListRepo,
		logger:        logger,
		sessions:      make(map[string]*flowSession),
	}
}

func sessionKey(companyID, phone string) string {
	return companyID + "|" + phone
}

// Start abre (ou reinicia) a conversa de agendamento de um telefone. Exige
// fluxo habilitado nos parâmetros do bot, telefone não bloqueado e cliente
// já cadastrado na empresa.
func (s *BotFlowServiceImpl) Start(ctx context.Context, companyID, phone string) error {
	if !validator.ValidatePhone(phone) {
		return errors.New("telefone inválido")
	}
	phone = validator.FormatPhone(phone)

	bot, err := s.botRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		s.logger.Error("erro ao buscar parâmetros do bot", zap.String("companyId", companyID), zap.Error(err))
		return errors.New("erro ao iniciar atendimento")
	}
	if bot == nil || !bot.HabilitarFluxo || !bot.PermiteAgendar {
		return errors.New("agendamento pelo bot não está habilitado")
	}

	blocked, err := s.blockListRepo.GetByPhone(ctx, phone)
	if err != nil {
		s.logger.Error("erro ao consultar bloqueio", zap.String("phone", phone), zap.Error(err))
		return errors.New("erro ao iniciar atendimento")
	}
	if blocked != nil {
		return errors.New("este número está bloqueado para agendamentos")
	}

	customer, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		s.logger.Error("erro ao buscar cliente", zap.String("phone", phone), zap.Error(err))
		return errors.New("erro ao iniciar atendimento")
	}
	if customer == nil {
		return errors.New("cliente não cadastrado")
	}

	s.mu.Lock()
	s.sessions[sessionKey(companyID, phone)] = &flowSession{
		picker:     scheduling.NewAvailabilityPicker(),
		customerID: customer.ID,
		companyID:  companyID,
	}
	s.mu.Unlock()

	return nil
}

// ChooseServices registra a seleção de serviços e consulta a
// disponibilidade. Trocar a seleção no meio da conversa invalida data e
// horário já escolhidos; uma consulta anterior ainda em voo é descartada
// pelo token de geração do picker.
func (s *BotFlowServiceImpl) ChooseServices(ctx context.Context, companyID, phone string, serviceIDs []string) ([]string, error) {
	session, err := s.session(companyID, phone)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	session.picker.SetServices(serviceIDs)
	token := session.picker.BeginCheck()
	session.mu.Unlock()

	result, err := s.appointments.Availability(ctx, domain.AvailabilityDTO{
		CompanyID:  companyID,
		ServiceIDs: serviceIDs,
	})
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if !session.picker.Complete(token, result) {
		return nil, errors.New("a seleção de serviços mudou, tente novamente")
	}

	return session.picker.Dates(), nil
}

// ChooseDate escolhe a data e devolve os horários dela em "HH:MM".
func (s *BotFlowServiceImpl) ChooseDate(ctx context.Context, companyID, phone, date string) ([]string, error) {
	session, err := s.session(companyID, phone)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.picker.SelectDate(date)
}

func (s *BotFlowServiceImpl) ChooseHour(ctx context.Context, companyID, phone, hour string) error {
	session, err := s.session(companyID, phone)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.picker.SelectHour(hour)
}

// Confirm cria o agendamento com a seleção feita e encerra a conversa. A
// criação passa pela mesma checagem de disponibilidade do painel, então uma
// seleção que ficou velha demais é recusada lá.
func (s *BotFlowServiceImpl) Confirm(ctx context.Context, companyID, phone string) (string, error) {
	session, err := s.session(companyID, phone)
	if err != nil {
		return "", err
	}

	session.mu.Lock()
	date, hour, err := session.picker.Selection()
	serviceIDs := session.picker.ServiceIDs()
	customerID := session.customerID
	session.mu.Unlock()
	if err != nil {
		return "", err
	}

	parsed, err := validator.FromDisplayDate(date)
	if err != nil {
		return "", errors.New("data inválida")
	}

	id, err := s.appointments.Create(ctx, domain.CreateAppointmentDTO{
		CustomerID:    customerID,
		CompanyID:     companyID,
		ServiceIDs:    serviceIDs,
		ScheduledDate: parsed.Format("2006-01-02"),
		ScheduledHour: hour,
	})
	if err != nil {
		return "", err
	}

	s.Abort(companyID, phone)
	return id, nil
}

// Abort descarta a conversa, se existir.
func (s *BotFlowServiceImpl) Abort(companyID, phone string) {
	s.mu.Lock()
	delete(s.sessions, sessionKey(companyID, validator.FormatPhone(phone)))
	s.mu.Unlock()
}

func (s *BotFlowServiceImpl) session(companyID, phone string) (*flowSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionKey(companyID, validator.FormatPhone(phone))]
	if !ok {
		return nil, errors.New("conversa não iniciada")
	}
	return session, nil
}
