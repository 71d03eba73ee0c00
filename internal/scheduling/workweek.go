package scheduling

import (
	"sort"

	"agendo/internal/domain"
)

// WeekReason identifica por que um dia da semana foi rejeitado.
type WeekReason string

const (
	ReasonInverted WeekReason = "inverted"
	ReasonOverlap  WeekReason = "overlap"
)

// WeekError aponta o primeiro dia inválido de uma semana de trabalho
// proposta. A validação para no primeiro erro, espelhando o formulário do
// painel que mostra uma mensagem por vez.
type WeekError struct {
	Day    domain.DayOfWeek
	Reason WeekReason
}

func (e *WeekError) Error() string {
	if e.Reason == ReasonInverted {
		return "os horários de " + weekdayPTBR(e.Day) + " precisam ter horário final posterior ao horário inicial"
	}
	return "os horários de " + weekdayPTBR(e.Day) + " têm sobreposição"
}

func weekdayPTBR(day domain.DayOfWeek) string {
	switch day {
	case domain.Monday:
		return "segunda-feira"
	case domain.Tuesday:
		return "terça-feira"
	case domain.Wednesday:
		return "quarta-feira"
	case domain.Thursday:
		return "quinta-feira"
	case domain.Friday:
		return "sexta-feira"
	case domain.Saturday:
		return "sábado"
	default:
		return "domingo"
	}
}

// HasInvertedRange reporta se algum intervalo tem início igual ou posterior
// ao fim. A comparação lexicográfica vale porque os horários são "HH:MM" com
// zero à esquerda.
func HasInvertedRange(intervals []domain.WorkWeek) bool {
	for _, interval := range intervals {
		if interval.StartTime >= interval.EndTime {
			return true
		}
	}
	return false
}

// HasOverlap reporta se dois intervalos do mesmo dia se sobrepõem.
// Intervalos encostados (fim == início do próximo) são permitidos. Dois
// intervalos com o mesmo início contam sempre como sobreposição.
func HasOverlap(intervals []domain.WorkWeek) bool {
	if len(intervals) < 2 {
		return false
	}

	sorted := make([]domain.WorkWeek, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	for i := 0; i < len(sorted)-1; i++ {
		current := sorted[i]
		next := sorted[i+1]

		if current.StartTime == next.StartTime {
			return true
		}
		if current.EndTime > next.StartTime {
			return true
		}
	}

	return false
}

// ValidateWeek valida a semana inteira, dia a dia, na ordem de segunda a
// domingo. Um dia sem intervalos é folga e sempre passa. Intervalos
// invertidos são reportados antes de sobreposição no mesmo dia.
func ValidateWeek(week map[domain.DayOfWeek][]domain.WorkWeek) *WeekError {
	for _, day := range domain.WeekDays {
		intervals := week[day]
		if len(intervals) == 0 {
			continue
		}
		if HasInvertedRange(intervals) {
			return &WeekError{Day: day, Reason: ReasonInverted}
		}
		if HasOverlap(intervals) {
			return &WeekError{Day: day, Reason: ReasonOverlap}
		}
	}
	return nil
}

// GroupByDay organiza a lista plana persistida em um mapa por dia, o formato
// que ValidateWeek e o motor de disponibilidade consomem.
func GroupByDay(workWeeks []domain.WorkWeek) map[domain.DayOfWeek][]domain.WorkWeek {
	week := make(map[domain.DayOfWeek][]domain.WorkWeek, len(domain.WeekDays))
	for _, ww := range workWeeks {
		week[ww.DayOfWeek] = append(week[ww.DayOfWeek], ww)
	}
	return week
}
