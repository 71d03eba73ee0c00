package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendo/internal/domain"
)

func interval(day domain.DayOfWeek, start, end string) domain.WorkWeek {
	return domain.WorkWeek{DayOfWeek: day, StartTime: start, EndTime: end}
}

func TestHasInvertedRange(t *testing.T) {
	tests := []struct {
		name      string
		intervals []domain.WorkWeek
		want      bool
	}{
		{
			name:      "lista vazia é dia de folga",
			intervals: nil,
			want:      false,
		},
		{
			name:      "intervalo normal",
			intervals: []domain.WorkWeek{interval(domain.Monday, "09:00", "10:00")},
			want:      false,
		},
		{
			name:      "início depois do fim",
			intervals: []domain.WorkWeek{interval(domain.Monday, "10:00", "09:00")},
			want:      true,
		},
		{
			name:      "início igual ao fim",
			intervals: []domain.WorkWeek{interval(domain.Monday, "09:00", "09:00")},
			want:      true,
		},
		{
			name: "um invertido no meio de válidos",
			intervals: []domain.WorkWeek{
				interval(domain.Monday, "08:00", "12:00"),
				interval(domain.Monday, "18:00", "14:00"),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasInvertedRange(tt.intervals))
		})
	}
}

func TestHasOverlap(t *testing.T) {
	tests := []struct {
		name      string
		intervals []domain.WorkWeek
		want      bool
	}{
		{
			name:      "lista vazia nunca sobrepõe",
			intervals: nil,
			want:      false,
		},
		{
			name:      "intervalo único nunca sobrepõe",
			intervals: []domain.WorkWeek{interval(domain.Monday, "09:00", "18:00")},
			want:      false,
		},
		{
			name: "intervalos encostados são permitidos",
			intervals: []domain.WorkWeek{
				interval(domain.Monday, "09:00", "10:00"),
				interval(domain.Monday, "10:00", "11:00"),
			},
			want: false,
		},
		{
			name: "sobreposição detectada fora de ordem",
			intervals: []domain.WorkWeek{
				interval(domain.Monday, "14:00", "16:00"),
				interval(domain.Monday, "09:00", "15:00"),
			},
			want: true,
		},
		{
			name: "mesmo início conta como sobreposição",
			intervals: []domain.WorkWeek{
				interval(domain.Monday, "09:00", "09:30"),
				interval(domain.Monday, "09:00", "12:00"),
			},
			want: true,
		},
		{
			name: "três intervalos disjuntos",
			intervals: []domain.WorkWeek{
				interval(domain.Monday, "13:00", "17:00"),
				interval(domain.Monday, "08:00", "11:00"),
				interval(domain.Monday, "11:30", "12:30"),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasOverlap(tt.intervals))
		})
	}
}

func TestValidateWeek(t *testing.T) {
	t.Run("semana vazia é válida", func(t *testing.T) {
		assert.Nil(t, ValidateWeek(map[domain.DayOfWeek][]domain.WorkWeek{}))
	})

	t.Run("semana cheia sem conflitos", func(t *testing.T) {
		week := map[domain.DayOfWeek][]domain.WorkWeek{}
		for _, day := range domain.WeekDays {
			week[day] = []domain.WorkWeek{
				interval(day, "09:00", "12:00"),
				interval(day, "13:00", "18:00"),
			}
		}
		assert.Nil(t, ValidateWeek(week))
	})

	t.Run("falha no primeiro dia inválido na ordem da semana", func(t *testing.T) {
		week := map[domain.DayOfWeek][]domain.WorkWeek{
			domain.Friday: {
				interval(domain.Friday, "10:00", "09:00"),
			},
			domain.Tuesday: {
				interval(domain.Tuesday, "09:00", "12:00"),
				interval(domain.Tuesday, "11:00", "14:00"),
			},
		}

		err := ValidateWeek(week)
		require.NotNil(t, err)
		assert.Equal(t, domain.Tuesday, err.Day)
		assert.Equal(t, ReasonOverlap, err.Reason)
	})

	t.Run("inversão reportada antes de sobreposição no mesmo dia", func(t *testing.T) {
		week := map[domain.DayOfWeek][]domain.WorkWeek{
			domain.Monday: {
				interval(domain.Monday, "12:00", "09:00"),
				interval(domain.Monday, "08:00", "13:00"),
			},
		}

		err := ValidateWeek(week)
		require.NotNil(t, err)
		assert.Equal(t, ReasonInverted, err.Reason)
		assert.Contains(t, err.Error(), "segunda-feira")
	})
}

func TestGroupByDay(t *testing.T) {
	flat := []domain.WorkWeek{
		interval(domain.Monday, "09:00", "12:00"),
		interval(domain.Wednesday, "14:00", "18:00"),
		interval(domain.Monday, "13:00", "17:00"),
	}

	week := GroupByDay(flat)
	assert.Len(t, week[domain.Monday], 2)
	assert.Len(t, week[domain.Wednesday], 1)
	assert.Empty(t, week[domain.Sunday])
}
