package scheduling

import (
	"errors"
	"math"

	"agendo/internal/domain"
)

// Os três motivos, mutuamente exclusivos, pelos quais um desconto pedido
// explicitamente é recusado no fechamento.
var (
	ErrDiscountInvalid     = errors.New("desconto inválido")
	ErrDiscountTypeMissing = errors.New("selecione o tipo de desconto")
	ErrDiscountZero        = errors.New("desconto não pode ser zero")
)

// Discount é o desconto aplicado uma única vez sobre o subtotal. Value está
// em reais para o tipo Valor e em pontos percentuais (de 0 a 100) para o
// tipo Porcentagem.
type Discount struct {
	Type  domain.DiscountType
	Value float64
}

// Subtotal soma os preços dos serviços selecionados, em centavos. Uma
// seleção vazia tem subtotal zero.
func Subtotal(services []domain.Service) Money {
	var total Money
	for _, service := range services {
		total += MoneyFromFloat(service.Price)
	}
	return total
}

// ApplyDiscount aplica o desconto sobre o subtotal. Desconto ausente ou com
// valor zero devolve o subtotal inalterado.
func ApplyDiscount(subtotal Money, discount *Discount) Money {
	if discount == nil || discount.Value == 0 {
		return subtotal
	}

	switch discount.Type {
	case domain.DiscountTypeAmount:
		return subtotal - MoneyFromFloat(discount.Value)
	case domain.DiscountTypePercentage:
		return Money(math.Round(float64(subtotal) * (1 - discount.Value/100)))
	default:
		return subtotal
	}
}

// IsDiscountValid verifica os limites do desconto: um desconto em valor não
// pode zerar nem exceder o subtotal; um percentual não passa de 100. Valor
// zero é tratado como "sem desconto" e é sempre válido.
func IsDiscountValid(subtotal Money, discount *Discount) bool {
	if discount == nil || discount.Value == 0 {
		return true
	}

	switch discount.Type {
	case domain.DiscountTypeAmount:
		return subtotal-MoneyFromFloat(discount.Value) > 0
	case domain.DiscountTypePercentage:
		return discount.Value <= 100
	default:
		return true
	}
}

// ValidateDiscount é a checagem estrita do fechamento, quando o desconto foi
// pedido explicitamente: além dos limites, exige tipo definido e valor
// diferente de zero. Devolve um dos três erros sentinela.
func ValidateDiscount(subtotal Money, discount *Discount) error {
	if discount == nil {
		return ErrDiscountTypeMissing
	}
	if !IsDiscountValid(subtotal, discount) {
		return ErrDiscountInvalid
	}
	if !discount.Type.Valid() {
		return ErrDiscountTypeMissing
	}
	if discount.Value == 0 {
		return ErrDiscountZero
	}
	return nil
}

// AllocateTotal rateia o total pago entre os serviços, proporcional ao preço
// de catálogo de cada um, em centavos. O último serviço absorve a sobra do
// arredondamento para que a soma feche exata com o total. O retorno está em
// reais, pronto para persistência.
func AllocateTotal(services []domain.Service, total Money) map[string]float64 {
	allocation := make(map[string]float64, len(services))
	if len(services) == 0 {
		return allocation
	}

	subtotal := Subtotal(services)
	if subtotal == 0 {
		for _, service := range services {
			allocation[service.ID] = 0
		}
		return allocation
	}

	var allocated Money
	for i, service := range services {
		var share Money
		if i == len(services)-1 {
			share = total - allocated
		} else {
			price := MoneyFromFloat(service.Price)
			share = Money(math.Round(float64(total) * float64(price) / float64(subtotal)))
			allocated += share
		}
		allocation[service.ID] = share.Float64()
	}

	return allocation
}

// BuildFinishPayload monta o registro de fechamento do agendamento. Sem
// desconto efetivo, discountType e discountValue vão nulos; o total pago é o
// subtotal com o desconto aplicado, já de volta em reais.
func BuildFinishPayload(services []domain.Service, paymentType domain.PaymentType, discount *Discount) domain.FinishAppointmentDTO {
	subtotal := Subtotal(services)
	total := ApplyDiscount(subtotal, discount)

	dto := domain.FinishAppointmentDTO{
		ServiceIDs:  make([]string, 0, len(services)),
		PaymentType: paymentType,
		TotalPaid:   total.Float64(),
	}
	for _, service := range services {
		dto.ServiceIDs = append(dto.ServiceIDs, service.ID)
	}

	if discount != nil && discount.Value != 0 && discount.Type.Valid() {
		discountType := discount.Type
		discountValue := discount.Value
		dto.DiscountType = &discountType
		dto.DiscountValue = &discountValue
	}

	return dto
}
