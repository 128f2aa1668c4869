package address

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCEP  = errors.New("invalid_cep")
	ErrNotFound    = errors.New("cep_not_found")
	ErrUnavailable = errors.New("cep_unavailable")
)

// Address is a postal code lookup result, in the shape the signup and
// profile forms fill in.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Normalize strips everything but digits. ok is false unless exactly eight
// digits remain.
func Normalize(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cep := b.String()
	return cep, len(cep) == 8
}

// Format renders an eight-digit CEP as 00000-000.
func Format(cep string) string {
	if len(cep) != 8 {
		return cep
	}
	return cep[:5] + "-" + cep[5:]
}
