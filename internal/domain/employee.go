package domain

import (
	"time"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// WeekDays na ordem de exibição e de validação (segunda primeiro).
var WeekDays = []DayOfWeek{
	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday,
}

func (d DayOfWeek) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// Weekday converte para time.Weekday, para casar datas do calendário com a
// semana de trabalho configurada.
func (d DayOfWeek) Weekday() time.Weekday {
	switch d {
	case Monday:
		return time.Monday
	case Tuesday:
		return time.Tuesday
	case Wednesday:
		return time.Wednesday
	case Thursday:
		return time.Thursday
	case Friday:
		return time.Friday
	case Saturday:
		return time.Saturday
	default:
		return time.Sunday
	}
}

func DayOfWeekFromWeekday(w time.Weekday) DayOfWeek {
	switch w {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

type Employee struct {
	ID        string     `json:"id"`
	CompanyID string     `json:"companyId"`
	Name      string     `json:"name"`
	Active    bool       `json:"active"`
	WorkWeeks []WorkWeek `json:"workWeeks"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// WorkWeek é um intervalo recorrente de atendimento em um dia da semana.
// StartTime e EndTime são "HH:MM" com zero à esquerda.
type WorkWeek struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	DayOfWeek  DayOfWeek `json:"dayOfWeek"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
}

type CreateEmployeeDTO struct {
	Name string `json:"name" binding:"required"`
}

type UpdateEmployeeDTO struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

type WorkWeekEntryDTO struct {
	DayOfWeek DayOfWeek `json:"dayOfWeek" binding:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	StartTime string    `json:"startTime" binding:"required"`
	EndTime   string    `json:"endTime" binding:"required"`
}

// UpdateWorkWeeksDTO substitui a semana inteira do funcionário de uma vez,
// como o formulário do painel envia.
type UpdateWorkWeeksDTO struct {
	WorkWeeks []WorkWeekEntryDTO `json:"workWeeks" binding:"required,dive"`
}

type EmployeeFilter struct {
	CompanyID *string
	Active    *bool
	Limit     int
	Offset    int
}
