package utils

import (
	"regexp"
	"strings"
	"time"
)

var (
	nonDigits     = regexp.MustCompile(`[^0-9]`)
	legacyPlate   = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)   // AAA1234
	mercosulPlate = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`) // AAA1A23
)

// NormalizeCPF strips everything that is not a digit.
func NormalizeCPF(cpf string) string {
	return nonDigits.ReplaceAllString(cpf, "")
}

// ValidateCPF checks the two CPF verification digits.
// Expects any formatting; normalizes before checking.
func ValidateCPF(cpf string) bool {
	cpf = NormalizeCPF(cpf)
	if len(cpf) != 11 {
		return false
	}

	// CPFs with all digits equal pass the checksum but are not valid
	if strings.Count(cpf, string(cpf[0])) == 11 {
		return false
	}

	// First verification digit: weights 10..2 over the first 9 digits
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(cpf[i]-'0') * (10 - i)
	}
	digit1 := (sum * 10) % 11
	if digit1 == 10 {
		digit1 = 0
	}
	if int(cpf[9]-'0') != digit1 {
		return false
	}

	// Second verification digit: weights 11..2 over the first 10 digits
	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(cpf[i]-'0') * (11 - i)
	}
	digit2 := (sum * 10) % 11
	if digit2 == 10 {
		digit2 = 0
	}
	return int(cpf[10]-'0') == digit2
}

// NormalizePlate uppercases and removes spaces and dashes.
func NormalizePlate(plate string) string {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	plate = strings.ReplaceAll(plate, " ", "")
	return strings.ReplaceAll(plate, "-", "")
}

// ValidatePlate accepts the Brazilian legacy format (AAA1234) and the
// Mercosul format (AAA1A23). Expects a normalized plate.
func ValidatePlate(plate string) bool {
	if len(plate) != 7 {
		return false
	}
	return legacyPlate.MatchString(plate) || mercosulPlate.MatchString(plate)
}

// AgeAt returns full years between birth and the reference date.
func AgeAt(birth, at time.Time) int {
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return age
}
