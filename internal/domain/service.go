package domain

import (
	"time"
)

// Service é um serviço do catálogo da empresa. Price está em reais com
// centavos (duas casas); a aritmética de totais acontece em centavos no
// pacote scheduling.
type Service struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Duration    int       `json:"duration"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateServiceDTO struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Duration    int     `json:"duration" binding:"required,min=5,max=600"`
	Description string  `json:"description"`
}

type UpdateServiceDTO struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Duration    *int     `json:"duration" binding:"omitempty,min=5,max=600"`
	Description *string  `json:"description"`
}

type ServiceFilter struct {
	CompanyID *string
	Query     string
	Active    *bool
	Limit     int
	Offset    int
}
