package domain

import (
	"time"
)

type Customer struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	BirthDate *time.Time `json:"birthDate"`
	IsBlocked bool       `json:"isBlocked,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CreateCustomerDTO struct {
	Name      string     `json:"name" binding:"required"`
	Phone     string     `json:"phone" binding:"required"`
	BirthDate *time.Time `json:"birthDate"`
}

type UpdateCustomerDTO struct {
	Name      *string    `json:"name"`
	Phone     *string    `json:"phone"`
	BirthDate *time.Time `json:"birthDate"`
}

type CustomerFilter struct {
	CompanyID *string
	Query     string
	Limit     int
	Offset    int
}

type BlockSource string

const (
	BlockSourceManual BlockSource = "MANUAL"
	BlockSourceSystem BlockSource = "SYSTEM"
)

// BlockedNumber impede novos agendamentos para o telefone bloqueado.
type BlockedNumber struct {
	ID          string      `json:"id"`
	PhoneNumber string      `json:"phoneNumber"`
	BlockReason string      `json:"blockReason,omitempty"`
	BlockSource BlockSource `json:"blockSource"`
	BlockedBy   string      `json:"blockedBy"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type BlockNumberDTO struct {
	PhoneNumber string      `json:"phoneNumber" binding:"required"`
	BlockReason string      `json:"blockReason"`
	BlockSource BlockSource `json:"blockSource" binding:"required,oneof=MANUAL SYSTEM"`
	BlockedBy   string      `json:"blockedBy" binding:"required,uuid"`
}

type UnblockNumberDTO struct {
	BlockedBy string `json:"blockedBy" binding:"required,uuid"`
}
