package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agendo/internal/domain"
)

func newEmployeeFixture() (*employeeRepoStub, *EmployeeServiceImpl) {
	repo := &employeeRepoStub{
		employees: []domain.Employee{
			{ID: "func-1", CompanyID: "emp-1", Name: "João", Active: true},
		},
	}
	return repo, NewEmployeeService(repo, zap.NewNop())
}

func TestUpdateWorkWeek(t *testing.T) {
	repo, svc := newEmployeeFixture()

	entries := []domain.WorkWeekEntryDTO{
		{DayOfWeek: domain.Monday, StartTime: "08:00", EndTime: "12:00"},
		{DayOfWeek: domain.Monday, StartTime: "12:00", EndTime: "18:00"},
		{DayOfWeek: domain.Saturday, StartTime: "09:00", EndTime: "13:00"},
	}
	err := svc.UpdateWorkWeek(context.Background(), "func-1", domain.UpdateWorkWeeksDTO{WorkWeeks: entries})

	require.NoError(t, err)
	assert.Equal(t, entries, repo.replaced)
}

func TestUpdateWorkWeekUnknownEmployee(t *testing.T) {
	repo := &employeeRepoStub{}
	svc := NewEmployeeService(repo, zap.NewNop())

	err := svc.UpdateWorkWeek(context.Background(), "fantasma", domain.UpdateWorkWeeksDTO{})
	assert.EqualError(t, err, "funcionário não encontrado")
}

func TestUpdateWorkWeekValidation(t *testing.T) {
	cases := []struct {
		name     string
		entries  []domain.WorkWeekEntryDTO
		expected string
	}{
		{
			name: "dia desconhecido",
			entries: []domain.WorkWeekEntryDTO{
				{DayOfWeek: domain.DayOfWeek("FERIADO"), StartTime: "08:00", EndTime: "12:00"},
			},
			expected: "dia da semana inválido",
		},
		{
			name: "horário sem zero à esquerda",
			entries: []domain.WorkWeekEntryDTO{
				{DayOfWeek: domain.Monday, StartTime: "8:00", EndTime: "12:00"},
			},
			expected: "horário inválido: use o formato HH:MM",
		},
		{
			name: "intervalo invertido",
			entries: []domain.WorkWeekEntryDTO{
				{DayOfWeek: domain.Monday, StartTime: "14:00", EndTime: "09:00"},
			},
			expected: "os horários de segunda-feira precisam ter horário final posterior ao horário inicial",
		},
		{
			name: "início igual ao fim",
			entries: []domain.WorkWeekEntryDTO{
				{DayOfWeek: domain.Tuesday, StartTime: "09:00", EndTime: "09:00"},
			},
			expected: "os horários de terça-feira precisam ter horário final posterior ao horário inicial",
		},
		{
			name: "sobreposição no mesmo dia",
			entries: []domain.WorkWeekEntryDTO{
				{DayOfWeek: domain.Friday, StartTime: "08:00", EndTime: "12:00"},
				{DayOfWeek: domain.Friday, StartTime: "11:00", EndTime: "15:00"},
			},
			expected: "os horários de sexta-feira têm sobreposição",
		},
		{
			// A validação percorre de segunda a domingo e para no primeiro
			// dia inválido, mesmo que a entrada venha fora de ordem.
			name: "reporta o primeiro dia na ordem da semana",
			entries: []domain.WorkWeekEntryDTO{
				{DayOfWeek: domain.Sunday, StartTime: "14:00", EndTime: "09:00"},
				{DayOfWeek: domain.Wednesday, StartTime: "08:00", EndTime: "12:00"},
				{DayOfWeek: domain.Wednesday, StartTime: "10:00", EndTime: "14:00"},
			},
			expected: "os horários de quarta-feira têm sobreposição",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, svc := newEmployeeFixture()

			err := svc.UpdateWorkWeek(context.Background(), "func-1", domain.UpdateWorkWeeksDTO{WorkWeeks: tc.entries})

			assert.EqualError(t, err, tc.expected)
			assert.Nil(t, repo.replaced)
		})
	}
}
