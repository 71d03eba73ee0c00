package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendo/internal/domain"
)

// Segunda-feira, 09:00 locais.
var monday = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

func mondayAgenda(busy ...BusyInterval) EmployeeAgenda {
	return EmployeeAgenda{
		EmployeeID: "emp-1",
		Week: map[domain.DayOfWeek][]domain.WorkWeek{
			domain.Monday: {
				{DayOfWeek: domain.Monday, StartTime: "09:00", EndTime: "12:00"},
			},
		},
		Busy: busy,
	}
}

func TestComputeAvailabilityBasicWindow(t *testing.T) {
	result := ComputeAvailability(AvailabilityParams{
		From:        monday,
		HorizonDays: 1,
		Interval:    30,
		Duration:    60,
		Agendas:     []EmployeeAgenda{mondayAgenda()},
	})

	require.Len(t, result, 1)
	assert.Equal(t, "03/03/2025", result[0].AvailableDate)
	// Último início possível é 11:00: o serviço de 60min precisa caber até 12:00.
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, result[0].AvailableHours)
}

func TestComputeAvailabilityLeadTime(t *testing.T) {
	result := ComputeAvailability(AvailabilityParams{
		From:        monday,
		HorizonDays: 1,
		Interval:    30,
		Duration:    30,
		LeadTime:    2 * time.Hour,
		Agendas:     []EmployeeAgenda{mondayAgenda()},
	})

	require.Len(t, result, 1)
	assert.Equal(t, []string{"11:00", "11:30"}, result[0].AvailableHours)
}

func TestComputeAvailabilitySkipsConflicts(t *testing.T) {
	busy := BusyInterval{
		Start: time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.March, 3, 11, 0, 0, 0, time.UTC),
	}

	result := ComputeAvailability(AvailabilityParams{
		From:        monday,
		HorizonDays: 1,
		Interval:    30,
		Duration:    60,
		Agendas:     []EmployeeAgenda{mondayAgenda(busy)},
	})

	require.Len(t, result, 1)
	// 09:30 invadiria o agendamento das 10:00; 10:00 e 10:30 também conflitam.
	assert.Equal(t, []string{"09:00", "11:00"}, result[0].AvailableHours)
}

func TestComputeAvailabilityUnionOfEmployees(t *testing.T) {
	free := mondayAgenda()
	free.EmployeeID = "emp-2"
	taken := mondayAgenda(BusyInterval{
		Start: time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC),
	})

	result := ComputeAvailability(AvailabilityParams{
		From:        monday,
		HorizonDays: 1,
		Interval:    60,
		Duration:    60,
		Agendas:     []EmployeeAgenda{taken, free},
	})

	// Basta um funcionário livre para o horário ser ofertado.
	require.Len(t, result, 1)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, result[0].AvailableHours)
}

func TestComputeAvailabilityOmitsFullDays(t *testing.T) {
	taken := mondayAgenda(BusyInterval{
		Start: time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC),
	})

	result := ComputeAvailability(AvailabilityParams{
		From:        monday,
		HorizonDays: 2,
		Interval:    30,
		Duration:    30,
		Agendas:     []EmployeeAgenda{taken},
	})

	// Segunda está lotada e terça não tem semana de trabalho configurada.
	assert.Empty(t, result)
}

func TestComputeAvailabilityDurationLongerThanWindow(t *testing.T) {
	result := ComputeAvailability(AvailabilityParams{
		From:        monday,
		HorizonDays: 1,
		Interval:    30,
		Duration:    240,
		Agendas:     []EmployeeAgenda{mondayAgenda()},
	})

	assert.Empty(t, result)
}

func TestHoursForDate(t *testing.T) {
	result := []domain.DateAvailability{
		{AvailableDate: "03/03/2025", AvailableHours: []string{"09:00", "10:00"}},
	}

	assert.Equal(t, []string{"09:00", "10:00"}, HoursForDate(result, "03/03/2025"))
	assert.Empty(t, HoursForDate(result, "04/03/2025"))
}
