package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendo/internal/domain"
)

func sampleResult() []domain.DateAvailability {
	return []domain.DateAvailability{
		{AvailableDate: "03/03/2025", AvailableHours: []string{"09:00", "10:00"}},
		{AvailableDate: "04/03/2025", AvailableHours: []string{"14:00"}},
	}
}

func TestPickerHappyPath(t *testing.T) {
	picker := NewAvailabilityPicker()
	assert.Equal(t, StateUnchecked, picker.State())

	picker.SetServices([]string{"corte"})
	token := picker.BeginCheck()
	assert.Equal(t, StateChecking, picker.State())

	require.True(t, picker.Complete(token, sampleResult()))
	assert.Equal(t, StateChecked, picker.State())
	assert.Equal(t, []string{"03/03/2025", "04/03/2025"}, picker.Dates())

	hours, err := picker.SelectDate("03/03/2025")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, hours)
	assert.Equal(t, StateDateSelected, picker.State())

	require.NoError(t, picker.SelectHour("10:00"))

	date, hour, err := picker.Selection()
	require.NoError(t, err)
	assert.Equal(t, "03/03/2025", date)
	assert.Equal(t, "10:00", hour)
}

func TestPickerResetsOnServiceChange(t *testing.T) {
	picker := NewAvailabilityPicker()
	picker.SetServices([]string{"corte"})
	token := picker.BeginCheck()
	require.True(t, picker.Complete(token, sampleResult()))

	_, err := picker.SelectDate("03/03/2025")
	require.NoError(t, err)
	require.NoError(t, picker.SelectHour("09:00"))

	// Mudar os serviços invalida data e horário já escolhidos.
	picker.SetServices([]string{"corte", "barba"})
	assert.Equal(t, StateUnchecked, picker.State())

	_, _, err = picker.Selection()
	assert.ErrorIs(t, err, ErrPickerNoSelection)

	_, err = picker.SelectDate("03/03/2025")
	assert.ErrorIs(t, err, ErrPickerNotChecked)
}

func TestPickerSameServicesKeepState(t *testing.T) {
	picker := NewAvailabilityPicker()
	picker.SetServices([]string{"corte", "barba"})
	token := picker.BeginCheck()
	require.True(t, picker.Complete(token, sampleResult()))

	// Reatribuir a mesma seleção não derruba o resultado carregado.
	picker.SetServices([]string{"corte", "barba"})
	assert.Equal(t, StateChecked, picker.State())
}

func TestPickerDiscardsStaleResponse(t *testing.T) {
	picker := NewAvailabilityPicker()
	picker.SetServices([]string{"corte"})

	stale := picker.BeginCheck()
	fresh := picker.BeginCheck()

	// A resposta da consulta antiga chega depois e é ignorada.
	assert.False(t, picker.Complete(stale, sampleResult()))
	assert.Equal(t, StateChecking, picker.State())

	require.True(t, picker.Complete(fresh, sampleResult()))
	assert.Equal(t, StateChecked, picker.State())
}

func TestPickerSelectHourValidation(t *testing.T) {
	picker := NewAvailabilityPicker()
	picker.SetServices([]string{"corte"})
	token := picker.BeginCheck()
	require.True(t, picker.Complete(token, sampleResult()))

	assert.ErrorIs(t, picker.SelectHour("09:00"), ErrPickerNoDate)

	_, err := picker.SelectDate("04/03/2025")
	require.NoError(t, err)
	assert.ErrorIs(t, picker.SelectHour("09:00"), ErrPickerInvalidHour)
	assert.NoError(t, picker.SelectHour("14:00"))
}

func TestPickerUnknownDateIsEmptyNotError(t *testing.T) {
	picker := NewAvailabilityPicker()
	picker.SetServices([]string{"corte"})
	token := picker.BeginCheck()
	require.True(t, picker.Complete(token, sampleResult()))

	hours, err := picker.SelectDate("31/12/2025")
	require.NoError(t, err)
	assert.Empty(t, hours)
}
