package domain

import (
	"time"
)

type Company struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Phone               string    `json:"phone"`
	Email               string    `json:"email"`
	Address             string    `json:"address,omitempty"`
	PhotoURL            string    `json:"photoUrl,omitempty"`
	AppointmentDays     int       `json:"appointmentDays"`
	AppointmentInterval int       `json:"appointmentInterval"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type UpdateCompanyDTO struct {
	Name                *string `json:"name"`
	Phone               *string `json:"phone"`
	Email               *string `json:"email" binding:"omitempty,email"`
	Address             *string `json:"address"`
	AppointmentDays     *int    `json:"appointmentDays" binding:"omitempty,min=1,max=90"`
	AppointmentInterval *int    `json:"appointmentInterval" binding:"omitempty,min=5,max=240"`
}

// MonthReportRequest pede o fechamento de um mês; qualquer dia do mês serve.
type MonthReportRequest struct {
	Date time.Time `json:"date" binding:"required"`
}

type MonthReportRow struct {
	ServiceID    string  `json:"serviceId"`
	ServiceName  string  `json:"serviceName"`
	Appointments int     `json:"appointments"`
	TotalPaid    float64 `json:"totalPaid"`
}

type MonthReport struct {
	CompanyID    string           `json:"companyId"`
	Month        string           `json:"month"`
	Rows         []MonthReportRow `json:"rows"`
	TotalPaid    float64          `json:"totalPaid"`
	Appointments int              `json:"appointments"`
}
