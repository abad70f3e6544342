package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MaxAmount is the largest approved amount accepted.
const MaxAmount = 1e12

// Either grouped thousands ("1.234.567,89") or a plain run of digits
// ("1234567,89"), with at most two decimal places.
var amountPattern = regexp.MustCompile(`^(\d{1,3}(\.\d{3})*|\d+)(,\d{1,2})?$`)

// ParseAmount parses a pt-BR formatted amount such as "15.000,50" or
// "R$ 1.234". Dots are thousands separators and the comma is the decimal
// separator. The amount must be positive and not above MaxAmount.
func ParseAmount(s string) (float64, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "R$"))
	if raw == "" {
		return 0, Validationf("valor aprovado é obrigatório")
	}
	if !amountPattern.MatchString(raw) {
		return 0, Validationf("valor inválido: %q", s)
	}
	normalized := strings.ReplaceAll(raw, ".", "")
	normalized = strings.Replace(normalized, ",", ".", 1)

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, Validationf("valor inválido: %q", s)
	}
	if v <= 0 {
		return 0, Validationf("valor aprovado deve ser maior que zero")
	}
	if v > MaxAmount {
		return 0, Validationf("valor aprovado acima do limite permitido")
	}
	v = math.Round(v*100) / 100
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, Validationf("valor inválido: %q", s)
	}
	return v, nil
}
