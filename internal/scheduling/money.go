package scheduling

import (
	"fmt"
	"math"
)

// Money é um valor monetário em centavos. Toda a aritmética de totais e
// descontos acontece em inteiros; a conversão para reais só ocorre na borda
// (JSON e exibição).
type Money int64

func MoneyFromFloat(value float64) Money {
	return Money(math.Round(value * 100))
}

func (m Money) Float64() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	return fmt.Sprintf("R$ %.2f", m.Float64())
}
