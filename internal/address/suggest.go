package address

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/room-scheduler/internal/debounce"
)

// Suggester backs the address autofill on the signup and profile forms.
// Keystrokes for the same form supersede each other; only the value
// still current after the settle window reaches the lookup.
type Suggester struct {
	lookup    Lookup
	debouncer *debounce.Debouncer
}

func NewSuggester(lookup Lookup, debouncer *debounce.Debouncer) *Suggester {
	return &Suggester{lookup: lookup, debouncer: debouncer}
}

// Suggest returns (nil, nil) when there is nothing to do: an incomplete
// CEP, a value equal to the one already on the form, or a call superseded
// by a newer one for the same form.
func (s *Suggester) Suggest(ctx context.Context, form, raw, current string) (*Address, error) {
	cep, ok := Normalize(raw)
	if !ok {
		return nil, nil
	}
	if cur, _ := Normalize(current); cur == cep {
		return nil, nil
	}

	if err := s.debouncer.Settle(ctx, form); err != nil {
		if errors.Is(err, debounce.ErrSuperseded) {
			return nil, nil
		}
		return nil, err
	}

	return s.lookup.Lookup(ctx, cep)
}
