package scheduling

import (
	"sort"
	"time"

	"agendo/internal/domain"
)

// BusyInterval é um trecho já ocupado da agenda de um funcionário.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// EmployeeAgenda reúne o que o motor precisa saber de um funcionário: a
// semana de trabalho configurada e os agendamentos existentes no horizonte.
type EmployeeAgenda struct {
	EmployeeID string
	Week       map[domain.DayOfWeek][]domain.WorkWeek
	Busy       []BusyInterval
}

// AvailabilityParams parametriza o cálculo de disponibilidade.
type AvailabilityParams struct {
	// From é o instante da consulta; nenhum horário antes de From+LeadTime
	// é oferecido.
	From        time.Time
	HorizonDays int
	// Interval é a granularidade dos horários ofertados, em minutos.
	Interval int
	// Duration é o tempo total exigido pelos serviços selecionados, em minutos.
	Duration int
	LeadTime time.Duration
	Agendas  []EmployeeAgenda
}

// ComputeAvailability devolve, por data, os horários em que pelo menos um
// funcionário consegue atender a duração pedida inteira dentro da sua semana
// de trabalho, sem conflitar com agendamentos existentes. Datas sem horário
// livre são omitidas. A saída usa o contrato do painel: "DD/MM/YYYY" e
// "HH:MM" em ordem crescente.
func ComputeAvailability(params AvailabilityParams) []domain.DateAvailability {
	if params.Interval <= 0 || params.Duration <= 0 || params.HorizonDays <= 0 {
		return nil
	}

	earliest := params.From.Add(params.LeadTime)
	duration := time.Duration(params.Duration) * time.Minute

	var result []domain.DateAvailability
	for offset := 0; offset < params.HorizonDays; offset++ {
		day := params.From.AddDate(0, 0, offset)
		dayOfWeek := domain.DayOfWeekFromWeekday(day.Weekday())

		hourSet := make(map[string]bool)
		for _, agenda := range params.Agendas {
			for _, interval := range agenda.Week[dayOfWeek] {
				collectFreeSlots(hourSet, day, interval, params.Interval, duration, earliest, agenda.Busy)
			}
		}

		if len(hourSet) == 0 {
			continue
		}

		hours := make([]string, 0, len(hourSet))
		for hour := range hourSet {
			hours = append(hours, hour)
		}
		sort.Strings(hours)

		result = append(result, domain.DateAvailability{
			AvailableDate:  day.Format("02/01/2006"),
			AvailableHours: hours,
		})
	}

	return result
}

func collectFreeSlots(
	hourSet map[string]bool,
	day time.Time,
	interval domain.WorkWeek,
	step int,
	duration time.Duration,
	earliest time.Time,
	busy []BusyInterval,
) {
	start, okStart := atClock(day, interval.StartTime)
	end, okEnd := atClock(day, interval.EndTime)
	if !okStart || !okEnd || !start.Before(end) {
		return
	}

	stepDuration := time.Duration(step) * time.Minute
	for slot := start; !slot.Add(duration).After(end); slot = slot.Add(stepDuration) {
		if slot.Before(earliest) {
			continue
		}
		if conflicts(slot, slot.Add(duration), busy) {
			continue
		}
		hourSet[slot.Format("15:04")] = true
	}
}

func conflicts(start, end time.Time, busy []BusyInterval) bool {
	for _, b := range busy {
		if start.Before(b.End) && end.After(b.Start) {
			return true
		}
	}
	return false
}

func atClock(day time.Time, clock string) (time.Time, bool) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		day.Location(),
	), true
}

// FreeEmployeesAt lista os funcionários livres para a duração inteira no
// instante pedido, na ordem das agendas. O chamador escolhe um deles para
// receber o agendamento; o horário já deve ter passado pelo cálculo de
// disponibilidade.
func FreeEmployeesAt(params AvailabilityParams, slot time.Time) []string {
	earliest := params.From.Add(params.LeadTime)
	duration := time.Duration(params.Duration) * time.Minute
	end := slot.Add(duration)
	dayOfWeek := domain.DayOfWeekFromWeekday(slot.Weekday())

	if slot.Before(earliest) {
		return nil
	}

	var free []string
	for _, agenda := range params.Agendas {
		for _, interval := range agenda.Week[dayOfWeek] {
			start, okStart := atClock(slot, interval.StartTime)
			intervalEnd, okEnd := atClock(slot, interval.EndTime)
			if !okStart || !okEnd {
				continue
			}
			if slot.Before(start) || end.After(intervalEnd) {
				continue
			}
			if conflicts(slot, end, agenda.Busy) {
				continue
			}
			free = append(free, agenda.EmployeeID)
			break
		}
	}

	return free
}

// HoursForDate procura os horários da data escolhida dentro de um resultado
// de disponibilidade. Uma data ausente devolve lista vazia em vez de erro:
// a seleção sempre vem do próprio resultado, mas um resultado trocado no
// meio do caminho não pode derrubar o fluxo.
func HoursForDate(result []domain.DateAvailability, date string) []string {
	for _, entry := range result {
		if entry.AvailableDate == date {
			return entry.AvailableHours
		}
	}
	return []string{}
}
