package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusDone      AppointmentStatus = "DONE"
	AppointmentStatusCanceled  AppointmentStatus = "CANCELED"
)

type DiscountType string

const (
	DiscountTypeAmount     DiscountType = "Valor"
	DiscountTypePercentage DiscountType = "Porcentagem"
)

func (d DiscountType) Valid() bool {
	return d == DiscountTypeAmount || d == DiscountTypePercentage
}

type PaymentType string

const (
	PaymentTypePix    PaymentType = "Pix"
	PaymentTypeCash   PaymentType = "Dinheiro"
	PaymentTypeDebit  PaymentType = "Débito"
	PaymentTypeCredit PaymentType = "Crédito"
)

type Appointment struct {
	ID            string               `json:"id"`
	CompanyID     string               `json:"companyId"`
	CustomerID    string               `json:"customerId"`
	EmployeeID    string               `json:"employeeId"`
	ScheduledDate time.Time            `json:"scheduledDate"`
	Status        AppointmentStatus    `json:"status"`
	Services      []AppointmentService `json:"services,omitempty"`
	PaymentType   *PaymentType         `json:"paymentType,omitempty"`
	DiscountType  *DiscountType        `json:"discountType,omitempty"`
	DiscountValue *float64             `json:"discountValue,omitempty"`
	TotalPaid     *float64             `json:"totalPaid,omitempty"`
	UpdatedUserID string               `json:"updatedUserId,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`

	// Campos derivados para o calendário.
	Duration     int       `json:"duration,omitempty"`
	Customer     *Customer `json:"customer,omitempty"`
	EmployeeName string    `json:"employeeName,omitempty"`
}

type AppointmentService struct {
	AppointmentID string   `json:"appointmentId"`
	ServiceID     string   `json:"serviceId"`
	PaidAmount    float64  `json:"paidAmount"`
	Service       *Service `json:"service,omitempty"`
}

type CreateAppointmentDTO struct {
	CustomerID    string   `json:"customerId" binding:"required,uuid"`
	CompanyID     string   `json:"companyId" binding:"required,uuid"`
	ServiceIDs    []string `json:"serviceIds" binding:"required,min=1,dive,uuid"`
	ScheduledDate string   `json:"scheduledDate" binding:"required"`
	ScheduledHour string   `json:"scheduledHour" binding:"required"`
}

type UpdateAppointmentDTO struct {
	CustomerID    *string  `json:"customerId" binding:"omitempty,uuid"`
	ServiceIDs    []string `json:"serviceIds" binding:"omitempty,min=1,dive,uuid"`
	ScheduledDate *string  `json:"scheduledDate"`
	ScheduledHour *string  `json:"scheduledHour"`
}

type SearchAppointmentDTO struct {
	CompanyID  string             `json:"companyId" binding:"required,uuid"`
	StartDate  time.Time          `json:"startDate" binding:"required"`
	EndDate    time.Time          `json:"endDate" binding:"required"`
	ServiceIDs []string           `json:"serviceIds" binding:"omitempty,dive,uuid"`
	Status     *AppointmentStatus `json:"status" binding:"omitempty,oneof=SCHEDULED DONE CANCELED"`
}

type AvailabilityDTO struct {
	CompanyID            string   `json:"companyId" binding:"required,uuid"`
	ServiceIDs           []string `json:"serviceIds" binding:"required,min=1,dive,uuid"`
	EditingAppointmentID *string  `json:"editingAppointmentId" binding:"omitempty,uuid"`
}

// DateAvailability é uma linha da resposta de disponibilidade. As datas vão
// em "DD/MM/YYYY" e os horários em "HH:MM", o contrato do painel.
type DateAvailability struct {
	AvailableDate  string   `json:"availableDate"`
	AvailableHours []string `json:"availableHours"`
}

type FinishAppointmentDTO struct {
	ServiceIDs    []string      `json:"serviceIds" binding:"required,min=1,dive,uuid"`
	PaymentType   PaymentType   `json:"paymentType" binding:"required,oneof=Pix Dinheiro Débito Crédito"`
	DiscountType  *DiscountType `json:"discountType" binding:"omitempty,oneof=Valor Porcentagem"`
	DiscountValue *float64      `json:"discountValue"`
	TotalPaid     float64       `json:"totalPaid"`
}

type AppointmentFilter struct {
	CompanyID  *string
	CustomerID *string
	EmployeeID *string
	Status     *AppointmentStatus
	ServiceIDs []string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}
