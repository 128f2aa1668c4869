package address

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"
)

const fetchTimeout = 5 * time.Second

// Lookup resolves a normalized CEP.
type Lookup interface {
	Lookup(ctx context.Context, cep string) (*Address, error)
}

type viaCEPResponse struct {
	CEP         string          `json:"cep"`
	Logradouro  string          `json:"logradouro"`
	Complemento string          `json:"complemento"`
	Bairro      string          `json:"bairro"`
	Localidade  string          `json:"localidade"`
	UF          string          `json:"uf"`
	Erro        json.RawMessage `json:"erro"`
}

// notFound accepts both {"erro": true} and {"erro": "true"}.
func (r viaCEPResponse) notFound() bool {
	raw := strings.Trim(strings.TrimSpace(string(r.Erro)), `"`)
	return raw == "true"
}

// ViaCEPClient queries the ViaCEP web service. Concurrent lookups of the
// same CEP share one upstream request and the upstream sits behind a
// circuit breaker.
type ViaCEPClient struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	group   singleflight.Group
	cache   Cache
	ttl     time.Duration
}

func NewViaCEPClient(baseURL string, cache Cache, ttl time.Duration) *ViaCEPClient {
	return &ViaCEPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: fetchTimeout},
		breaker: newBreaker("viacep", 30*time.Second),
		cache:   cache,
		ttl:     ttl,
	}
}

func newBreaker(name string, timeout time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			// a CEP that does not exist is a healthy answer
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})
}

func (c *ViaCEPClient) Lookup(ctx context.Context, cep string) (*Address, error) {
	cep, ok := Normalize(cep)
	if !ok {
		return nil, ErrInvalidCEP
	}

	if c.cache != nil {
		if addr, err := c.cache.Get(ctx, cep); err == nil && addr != nil {
			return addr, nil
		} else if err != nil {
			log.Warn().Err(err).Str("cep", cep).Msg("cep cache read failed")
		}
	}

	// The shared upstream call is detached from the caller: one caller
	// giving up must neither fail the others joined on it nor count as an
	// upstream failure in the breaker.
	ch := c.group.DoChan(cep, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		v, err := c.breaker.Execute(func() (interface{}, error) {
			return c.fetch(fetchCtx, cep)
		})
		if err != nil {
			return nil, err
		}

		addr := v.(*Address)
		if c.cache != nil {
			if err := c.cache.Set(fetchCtx, cep, addr, c.ttl); err != nil {
				log.Warn().Err(err).Str("cep", cep).Msg("cep cache write failed")
			}
		}
		return addr, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}

	if res.Err != nil {
		if errors.Is(res.Err, gobreaker.ErrOpenState) || errors.Is(res.Err, gobreaker.ErrTooManyRequests) {
			return nil, ErrUnavailable
		}
		return nil, res.Err
	}
	return res.Val.(*Address), nil
}

func (c *ViaCEPClient) fetch(ctx context.Context, cep string) (*Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return nil, ErrInvalidCEP
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if body.notFound() {
		return nil, ErrNotFound
	}

	return &Address{
		CEP:          cep,
		Street:       body.Logradouro,
		Complement:   body.Complemento,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
	}, nil
}
