package scheduling

import (
	"errors"

	"agendo/internal/domain"
)

// PickerState é o estágio da seleção dependente data → horário.
type PickerState string

const (
	// StateUnchecked: nenhuma disponibilidade consultada; data e horário
	// indisponíveis.
	StateUnchecked PickerState = "unchecked"
	// StateChecking: consulta em andamento para a seleção de serviços atual.
	StateChecking PickerState = "checking"
	// StateChecked: resultado carregado; a data pode ser escolhida.
	StateChecked PickerState = "checked"
	// StateDateSelected: data escolhida; o horário pode ser escolhido entre
	// os daquela data.
	StateDateSelected PickerState = "date_selected"
)

var (
	ErrPickerNotChecked  = errors.New("disponibilidade ainda não verificada")
	ErrPickerNoDate      = errors.New("escolha uma data antes do horário")
	ErrPickerInvalidHour = errors.New("horário fora da lista de disponibilidade")
	ErrPickerNoSelection = errors.New("data e horário ainda não escolhidos")
)

// AvailabilityPicker conduz a escolha em duas etapas (data, depois horário)
// sobre um resultado de disponibilidade. Qualquer mudança na seleção de
// serviços invalida o que já foi escolhido: a disponibilidade depende da
// duração total, que depende dos serviços.
//
// Cada consulta recebe um token de geração; uma resposta que chega depois de
// a seleção mudar é simplesmente descartada, então um resultado velho nunca
// sobrescreve um mais novo.
type AvailabilityPicker struct {
	state      PickerState
	generation uint64
	serviceIDs []string
	result     []domain.DateAvailability
	date       string
	hour       string
}

func NewAvailabilityPicker() *AvailabilityPicker {
	return &AvailabilityPicker{state: StateUnchecked}
}

func (p *AvailabilityPicker) State() PickerState {
	return p.state
}

func (p *AvailabilityPicker) ServiceIDs() []string {
	return p.serviceIDs
}

// SetServices registra a seleção de serviços. Qualquer alteração volta o
// picker para o estado inicial e invalida consultas em andamento.
func (p *AvailabilityPicker) SetServices(serviceIDs []string) {
	if equalIDs(p.serviceIDs, serviceIDs) {
		return
	}
	p.serviceIDs = append([]string(nil), serviceIDs...)
	p.reset()
}

// BeginCheck marca o início de uma consulta de disponibilidade e devolve o
// token que a resposta precisa apresentar.
func (p *AvailabilityPicker) BeginCheck() uint64 {
	p.generation++
	p.state = StateChecking
	p.result = nil
	p.date = ""
	p.hour = ""
	return p.generation
}

// Complete entrega o resultado de uma consulta. Respostas com token antigo
// são ignoradas e o retorno indica se o resultado foi aplicado.
func (p *AvailabilityPicker) Complete(token uint64, result []domain.DateAvailability) bool {
	if token != p.generation || p.state != StateChecking {
		return false
	}
	p.result = result
	p.state = StateChecked
	return true
}

// Dates lista as datas do resultado carregado, na ordem recebida.
func (p *AvailabilityPicker) Dates() []string {
	dates := make([]string, 0, len(p.result))
	for _, entry := range p.result {
		dates = append(dates, entry.AvailableDate)
	}
	return dates
}

// SelectDate escolhe uma data e devolve os horários dela. Uma data fora do
// resultado devolve lista vazia, sem erro.
func (p *AvailabilityPicker) SelectDate(date string) ([]string, error) {
	if p.state != StateChecked && p.state != StateDateSelected {
		return nil, ErrPickerNotChecked
	}
	p.date = date
	p.hour = ""
	p.state = StateDateSelected
	return HoursForDate(p.result, date), nil
}

// SelectHour escolhe um horário da data já selecionada.
func (p *AvailabilityPicker) SelectHour(hour string) error {
	if p.state != StateDateSelected {
		return ErrPickerNoDate
	}
	for _, available := range HoursForDate(p.result, p.date) {
		if available == hour {
			p.hour = hour
			return nil
		}
	}
	return ErrPickerInvalidHour
}

// Selection devolve a data e o horário escolhidos.
func (p *AvailabilityPicker) Selection() (date, hour string, err error) {
	if p.state != StateDateSelected || p.hour == "" {
		return "", "", ErrPickerNoSelection
	}
	return p.date, p.hour, nil
}

// Reset descarta resultado e escolhas e volta ao estado inicial.
func (p *AvailabilityPicker) Reset() {
	p.reset()
}

func (p *AvailabilityPicker) reset() {
	p.generation++
	p.state = StateUnchecked
	p.result = nil
	p.date = ""
	p.hour = ""
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
