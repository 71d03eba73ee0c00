package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+5511987654321"))
	assert.True(t, ValidatePhone("(11) 98765-4321"))
	assert.True(t, ValidatePhone("11 98765 4321"))
	assert.False(t, ValidatePhone("123"))
	assert.False(t, ValidatePhone("abc"))
	assert.False(t, ValidatePhone(""))
}

func TestFormatPhone(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"+5511987654321", "+5511987654321"},
		{"5511987654321", "+5511987654321"},
		{"(11) 98765-4321", "+5511987654321"},
		{"011987654321", "+5511987654321"},
		{"11987654321", "+5511987654321"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, FormatPhone(tc.in), tc.in)
	}
}

func TestValidateTime(t *testing.T) {
	// A comparação lexicográfica da agenda exige zero à esquerda.
	valid := []string{"00:00", "08:30", "12:00", "23:59"}
	for _, v := range valid {
		assert.True(t, ValidateTime(v), v)
	}

	invalid := []string{"8:30", "24:00", "12:60", "12h30", "12:5", ""}
	for _, v := range invalid {
		assert.False(t, ValidateTime(v), v)
	}
}

func TestValidateDate(t *testing.T) {
	assert.True(t, ValidateDate("2026-06-10"))
	assert.False(t, ValidateDate("10/06/2026"))
	assert.False(t, ValidateDate("2026-13-01"))
	assert.False(t, ValidateDate(""))
}

func TestDisplayDateRoundTrip(t *testing.T) {
	parsed, err := FromDisplayDate("10/06/2026")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-10", parsed.Format("2006-01-02"))
	assert.Equal(t, "10/06/2026", ToDisplayDate(parsed))

	_, err = FromDisplayDate("2026-06-10")
	assert.Error(t, err)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Corte Masculino", SanitizeString("Corte Masculino"))
	assert.Equal(t, "scriptalert(1)/script", SanitizeString("<script>alert(1)</script>"))
	assert.Equal(t, "DROP TABLE users", SanitizeString("DROP TABLE users;"))
}
