package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendo/internal/domain"
)

func service(id string, price float64) domain.Service {
	return domain.Service{ID: id, Price: price}
}

func TestSubtotal(t *testing.T) {
	assert.Equal(t, Money(0), Subtotal(nil))
	assert.Equal(t, Money(5000), Subtotal([]domain.Service{service("a", 50)}))
	assert.Equal(t, Money(8000), Subtotal([]domain.Service{service("a", 50), service("b", 30)}))

	// Centavos não podem derivar em ponto flutuante: 0.1+0.2 precisa dar 30.
	assert.Equal(t, Money(30), Subtotal([]domain.Service{service("a", 0.1), service("b", 0.2)}))
}

func TestApplyDiscount(t *testing.T) {
	subtotal := Money(8000)

	tests := []struct {
		name     string
		discount *Discount
		want     Money
	}{
		{"sem desconto", nil, 8000},
		{"valor zero é sem desconto", &Discount{Type: domain.DiscountTypeAmount, Value: 0}, 8000},
		{"desconto em valor", &Discount{Type: domain.DiscountTypeAmount, Value: 25}, 5500},
		{"desconto percentual", &Discount{Type: domain.DiscountTypePercentage, Value: 10}, 7200},
		{"percentual de 100 zera o total", &Discount{Type: domain.DiscountTypePercentage, Value: 100}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyDiscount(subtotal, tt.discount))
		})
	}
}

func TestIsDiscountValid(t *testing.T) {
	subtotal := Money(10000)

	tests := []struct {
		name     string
		discount *Discount
		want     bool
	}{
		{"sem desconto", nil, true},
		{"zero curto-circuita para válido", &Discount{Type: domain.DiscountTypeAmount, Value: 0}, true},
		{"valor igual ao subtotal zeraria o total", &Discount{Type: domain.DiscountTypeAmount, Value: 100}, false},
		{"valor logo abaixo do subtotal", &Discount{Type: domain.DiscountTypeAmount, Value: 99}, true},
		{"percentual no limite de 100", &Discount{Type: domain.DiscountTypePercentage, Value: 100}, true},
		{"percentual acima de 100", &Discount{Type: domain.DiscountTypePercentage, Value: 101}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDiscountValid(subtotal, tt.discount))
		})
	}
}

func TestValidateDiscount(t *testing.T) {
	subtotal := Money(10000)

	tests := []struct {
		name     string
		discount *Discount
		want     error
	}{
		{"desconto válido", &Discount{Type: domain.DiscountTypeAmount, Value: 20}, nil},
		{"acima do subtotal", &Discount{Type: domain.DiscountTypeAmount, Value: 150}, ErrDiscountInvalid},
		{"tipo não selecionado", &Discount{Type: "", Value: 10}, ErrDiscountTypeMissing},
		{"valor zero", &Discount{Type: domain.DiscountTypePercentage, Value: 0}, ErrDiscountZero},
		{"desconto ausente", nil, ErrDiscountTypeMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDiscount(subtotal, tt.discount)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuildFinishPayload(t *testing.T) {
	services := []domain.Service{service("corte", 50), service("barba", 30)}

	t.Run("ponta a ponta com percentual", func(t *testing.T) {
		dto := BuildFinishPayload(services, domain.PaymentTypePix, &Discount{
			Type:  domain.DiscountTypePercentage,
			Value: 10,
		})

		assert.Equal(t, []string{"corte", "barba"}, dto.ServiceIDs)
		assert.Equal(t, domain.PaymentTypePix, dto.PaymentType)
		require.NotNil(t, dto.DiscountType)
		assert.Equal(t, domain.DiscountTypePercentage, *dto.DiscountType)
		require.NotNil(t, dto.DiscountValue)
		assert.Equal(t, 10.0, *dto.DiscountValue)
		assert.Equal(t, 72.0, dto.TotalPaid)
	})

	t.Run("sem desconto efetivo vão campos nulos", func(t *testing.T) {
		dto := BuildFinishPayload(services, domain.PaymentTypeCash, &Discount{
			Type:  domain.DiscountTypeAmount,
			Value: 0,
		})

		assert.Nil(t, dto.DiscountType)
		assert.Nil(t, dto.DiscountValue)
		assert.Equal(t, 80.0, dto.TotalPaid)
	})
}
