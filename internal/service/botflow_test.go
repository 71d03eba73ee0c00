package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agendo/internal/domain"
)

type appointmentServiceStub struct {
	availability []domain.DateAvailability
	created      *domain.CreateAppointmentDTO
	createErr    error
}

func (s *appointmentServiceStub) Create(_ context.Context, dto domain.CreateAppointmentDTO) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	s.created = &dto
	return "ag-novo", nil
}

func (s *appointmentServiceStub) GetByID(_ context.Context, _ string) (*domain.Appointment, error) {
	return nil, nil
}

func (s *appointmentServiceStub) Update(_ context.Context, _ string, _ domain.UpdateAppointmentDTO) error {
	return nil
}

func (s *appointmentServiceStub) Search(_ context.Context, _ domain.SearchAppointmentDTO, _, _ int) ([]domain.Appointment, int, error) {
	return nil, 0, nil
}

func (s *appointmentServiceStub) Availability(_ context.Context, _ domain.AvailabilityDTO) ([]domain.DateAvailability, error) {
	return s.availability, nil
}

func (s *appointmentServiceStub) Cancel(_ context.Context, _, _ string) error {
	return nil
}

func (s *appointmentServiceStub) Done(_ context.Context, _ string, _ domain.FinishAppointmentDTO, _ string) error {
	return nil
}

type botFlowFixture struct {
	appointments *appointmentServiceStub
	bot          *botRepoStub
	customers    *customerRepoStub
	blocklist    *blockRepoStub
	svc          *BotFlowServiceImpl
}

func newBotFlowFixture() *botFlowFixture {
	appointments := &appointmentServiceStub{
		availability: []domain.DateAvailability{
			{AvailableDate: "10/06/2026", AvailableHours: []string{"09:00", "09:30"}},
			{AvailableDate: "11/06/2026", AvailableHours: []string{"14:00"}},
		},
	}
	bot := &botRepoStub{
		params: &domain.BotParameters{
			CompanyID:      "emp-1",
			HabilitarFluxo: true,
			PermiteAgendar: true,
		},
	}
	customers := &customerRepoStub{
		byPhone: &domain.Customer{ID: "cli-1", Name: "Maria", Phone: "+5511987654321"},
	}
	blocklist := &blockRepoStub{}

	return &botFlowFixture{
		appointments: appointments,
		bot:          bot,
		customers:    customers,
		blocklist:    blocklist,
		svc:          NewBotFlowService(appointments, bot, customers, blocklist, zap.NewNop()),
	}
}

func TestBotFlowHappyPath(t *testing.T) {
	fx := newBotFlowFixture()
	ctx := context.Background()

	// O telefone chega formatado como o cliente digitou; a sessão é a mesma
	// quando as próximas mensagens vêm já normalizadas.
	require.NoError(t, fx.svc.Start(ctx, "emp-1", "(11) 98765-4321"))

	dates, err := fx.svc.ChooseServices(ctx, "emp-1", "+5511987654321", []string{"svc-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10/06/2026", "11/06/2026"}, dates)

	hours, err := fx.svc.ChooseDate(ctx, "emp-1", "+5511987654321", "10/06/2026")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, hours)

	require.NoError(t, fx.svc.ChooseHour(ctx, "emp-1", "+5511987654321", "09:30"))

	id, err := fx.svc.Confirm(ctx, "emp-1", "+5511987654321")
	require.NoError(t, err)
	assert.Equal(t, "ag-novo", id)

	require.NotNil(t, fx.appointments.created)
	assert.Equal(t, "cli-1", fx.appointments.created.CustomerID)
	assert.Equal(t, "emp-1", fx.appointments.created.CompanyID)
	assert.Equal(t, []string{"svc-1"}, fx.appointments.created.ServiceIDs)
	assert.Equal(t, "2026-06-10", fx.appointments.created.ScheduledDate)
	assert.Equal(t, "09:30", fx.appointments.created.ScheduledHour)

	// Confirmar encerra a conversa.
	_, err = fx.svc.Confirm(ctx, "emp-1", "+5511987654321")
	assert.EqualError(t, err, "conversa não iniciada")
}

func TestBotFlowRequiresStart(t *testing.T) {
	fx := newBotFlowFixture()

	_, err := fx.svc.ChooseServices(context.Background(), "emp-1", "+5511987654321", []string{"svc-1"})
	assert.EqualError(t, err, "conversa não iniciada")
}

func TestBotFlowStartGuards(t *testing.T) {
	t.Run("fluxo desabilitado", func(t *testing.T) {
		fx := newBotFlowFixture()
		fx.bot.params.HabilitarFluxo = false

		err := fx.svc.Start(context.Background(), "emp-1", "+5511987654321")
		assert.EqualError(t, err, "agendamento pelo bot não está habilitado")
	})

	t.Run("agendamento não permitido", func(t *testing.T) {
		fx := newBotFlowFixture()
		fx.bot.params.PermiteAgendar = false

		err := fx.svc.Start(context.Background(), "emp-1", "+5511987654321")
		assert.EqualError(t, err, "agendamento pelo bot não está habilitado")
	})

	t.Run("número bloqueado", func(t *testing.T) {
		fx := newBotFlowFixture()
		fx.blocklist.blocked = &domain.BlockedNumber{PhoneNumber: "+5511987654321"}

		err := fx.svc.Start(context.Background(), "emp-1", "+5511987654321")
		assert.EqualError(t, err, "este número está bloqueado para agendamentos")
	})

	t.Run("cliente desconhecido", func(t *testing.T) {
		fx := newBotFlowFixture()
		fx.customers.byPhone = nil

		err := fx.svc.Start(context.Background(), "emp-1", "+5511987654321")
		assert.EqualError(t, err, "cliente não cadastrado")
	})

	t.Run("telefone inválido", func(t *testing.T) {
		fx := newBotFlowFixture()

		err := fx.svc.Start(context.Background(), "emp-1", "123")
		assert.EqualError(t, err, "telefone inválido")
	})
}

func TestBotFlowOrderEnforced(t *testing.T) {
	fx := newBotFlowFixture()
	ctx := context.Background()

	require.NoError(t, fx.svc.Start(ctx, "emp-1", "+5511987654321"))

	// Data antes da consulta de disponibilidade.
	_, err := fx.svc.ChooseDate(ctx, "emp-1", "+5511987654321", "10/06/2026")
	assert.Error(t, err)

	_, err = fx.svc.ChooseServices(ctx, "emp-1", "+5511987654321", []string{"svc-1"})
	require.NoError(t, err)

	// Horário antes da data.
	err = fx.svc.ChooseHour(ctx, "emp-1", "+5511987654321", "09:00")
	assert.Error(t, err)

	// Confirmação com a seleção incompleta.
	_, err = fx.svc.Confirm(ctx, "emp-1", "+5511987654321")
	assert.Error(t, err)
}

func TestBotFlowAbort(t *testing.T) {
	fx := newBotFlowFixture()
	ctx := context.Background()

	require.NoError(t, fx.svc.Start(ctx, "emp-1", "+5511987654321"))
	fx.svc.Abort("emp-1", "(11) 98765-4321")

	_, err := fx.svc.ChooseServices(ctx, "emp-1", "+5511987654321", []string{"svc-1"})
	assert.EqualError(t, err, "conversa não iniciada")
}
