package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,14}$`)
	timeRegex  = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func ValidatePhone(phone string) bool {
	cleanPhone := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '+' {
			return r
		}
		return -1
	}, phone)

	return phoneRegex.MatchString(cleanPhone)
}

// ValidateTime aceita somente "HH:MM" em 24 horas com zero à esquerda.
// O contrato de comparação lexicográfica do núcleo de agenda depende disso.
func ValidateTime(value string) bool {
	return timeRegex.MatchString(value)
}

// ValidateDate aceita "YYYY-MM-DD", o formato dos payloads de criação.
func ValidateDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// FormatPhone normaliza para E.164 brasileiro (+55DDDNÚMERO).
func FormatPhone(phone string) string {
	cleanPhone := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '+' {
			return r
		}
		return -1
	}, phone)

	if strings.HasPrefix(cleanPhone, "+") {
		return cleanPhone
	}
	if strings.HasPrefix(cleanPhone, "55") && len(cleanPhone) >= 12 {
		return "+" + cleanPhone
	}
	if strings.HasPrefix(cleanPhone, "0") {
		cleanPhone = cleanPhone[1:]
	}
	return "+55" + cleanPhone
}

// ToDisplayDate converte "YYYY-MM-DD" (ou time.Time já truncado) para "DD/MM/YYYY".
func ToDisplayDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FromDisplayDate converte "DD/MM/YYYY" para time.Time (meia-noite local).
func FromDisplayDate(value string) (time.Time, error) {
	return time.Parse("02/01/2006", value)
}

func SanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' || r == '&' || r == '"' || r == '\'' || r == '`' || r == ';' {
			return -1
		}
		return r
	}, s)
}
