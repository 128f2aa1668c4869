package address

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/BruksfildServices01/room-scheduler/internal/debounce"
)

type memoryCache struct {
	mu    sync.Mutex
	items map[string]*Address
}

func (m *memoryCache) Get(ctx context.Context, cep string) (*Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[cep], nil
}

func (m *memoryCache) Set(ctx context.Context, cep string, addr *Address, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items == nil {
		m.items = map[string]*Address{}
	}
	m.items[cep] = addr
	return nil
}

func viaCEPServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/ws/01001000/json/":
			w.Write([]byte(`{"cep":"01001-000","logradouro":"Praça da Sé","complemento":"lado ímpar","bairro":"Sé","localidade":"São Paulo","uf":"SP"}`))
		case "/ws/99999999/json/":
			w.Write([]byte(`{"erro": true}`))
		case "/ws/88888888/json/":
			w.Write([]byte(`{"erro": "true"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
}

func TestNormalize(t *testing.T) {
	cases := map[string]struct {
		want string
		ok   bool
	}{
		"01001-000":   {"01001000", true},
		" 01.001-000": {"01001000", true},
		"0100100":     {"0100100", false},
		"010010001":   {"010010001", false},
		"":            {"", false},
	}
	for raw, tc := range cases {
		got, ok := Normalize(raw)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Normalize(%q) = %q,%v want %q,%v", raw, got, ok, tc.want, tc.ok)
		}
	}
	if Format("01001000") != "01001-000" {
		t.Error("unexpected format")
	}
}

func TestLookup(t *testing.T) {
	var hits int32
	srv := viaCEPServer(t, &hits)
	defer srv.Close()

	cache := &memoryCache{}
	c := NewViaCEPClient(srv.URL, cache, time.Hour)
	ctx := context.Background()

	addr, err := c.Lookup(ctx, "01001-000")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if addr.City != "São Paulo" || addr.State != "SP" || addr.Street != "Praça da Sé" || addr.CEP != "01001000" {
		t.Errorf("unexpected address %+v", addr)
	}

	if _, err := c.Lookup(ctx, "01001000"); err != nil {
		t.Fatalf("cached lookup: %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("expected cache hit, upstream called %d times", hits)
	}

	for _, cep := range []string{"99999999", "88888888"} {
		if _, err := c.Lookup(ctx, cep); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound, got %v", cep, err)
		}
	}

	if _, err := c.Lookup(ctx, "123"); !errors.Is(err, ErrInvalidCEP) {
		t.Errorf("expected ErrInvalidCEP, got %v", err)
	}
}

func TestBreakerOpensOnUpstreamFailures(t *testing.T) {
	var hits int32
	srv := viaCEPServer(t, &hits)
	defer srv.Close()

	c := NewViaCEPClient(srv.URL, nil, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.Lookup(ctx, "12345678"); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("attempt %d: expected ErrUnavailable, got %v", i, err)
		}
	}
	before := atomic.LoadInt32(&hits)

	if _, err := c.Lookup(ctx, "01001000"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("open breaker should short-circuit, got %v", err)
	}
	if atomic.LoadInt32(&hits) != before {
		t.Error("open breaker still reached upstream")
	}
}

type countingLookup struct {
	calls int32
}

func (c *countingLookup) Lookup(ctx context.Context, cep string) (*Address, error) {
	atomic.AddInt32(&c.calls, 1)
	return &Address{CEP: cep}, nil
}

func TestSuggestSkipsIncompleteAndUnchanged(t *testing.T) {
	lookup := &countingLookup{}
	s := NewSuggester(lookup, debounce.New(time.Millisecond))
	ctx := context.Background()

	if addr, err := s.Suggest(ctx, "signup", "0100", ""); addr != nil || err != nil {
		t.Errorf("incomplete cep: got %v, %v", addr, err)
	}
	if addr, err := s.Suggest(ctx, "profile", "01001-000", "01001000"); addr != nil || err != nil {
		t.Errorf("unchanged cep: got %v, %v", addr, err)
	}
	if atomic.LoadInt32(&lookup.calls) != 0 {
		t.Fatalf("expected no lookups, got %d", lookup.calls)
	}

	addr, err := s.Suggest(ctx, "signup", "01001-000", "")
	if err != nil || addr == nil || addr.CEP != "01001000" {
		t.Fatalf("expected lookup result, got %v, %v", addr, err)
	}
}

func TestSuggestOneLookupPerSettle(t *testing.T) {
	lookup := &countingLookup{}
	s := NewSuggester(lookup, debounce.New(50*time.Millisecond))
	ctx := context.Background()

	var wg sync.WaitGroup
	var answered int32
	for _, raw := range []string{"01001000", "01001001", "01001002"} {
		wg.Add(1)
		go func(raw string) {
			defer wg.Done()
			if addr, _ := s.Suggest(ctx, "signup", raw, ""); addr != nil {
				atomic.AddInt32(&answered, 1)
			}
		}(raw)
		time.Sleep(5 * time.Millisecond)
	}
	wg.Wait()

	if lookup.calls != 1 || answered != 1 {
		t.Fatalf("expected one lookup, got %d lookups and %d answers", lookup.calls, answered)
	}
}

func TestAbandonedLookupsDoNotOpenBreaker(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		time.Sleep(100 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cep":"01001-000","localidade":"São Paulo","uf":"SP"}`))
	}))
	defer srv.Close()

	cache := &memoryCache{}
	c := NewViaCEPClient(srv.URL, cache, time.Hour)

	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		_, err := c.Lookup(ctx, "01001000")
		cancel()
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("attempt %d: expected the caller's deadline error, got %v", i, err)
		}
	}

	addr, err := c.Lookup(context.Background(), "01001000")
	if err != nil {
		t.Fatalf("patient caller: expected an address, got %v", err)
	}
	if addr.City != "São Paulo" {
		t.Errorf("unexpected address %+v", addr)
	}
	if got := c.breaker.State(); got != gobreaker.StateClosed {
		t.Errorf("expected closed breaker, got %s", got)
	}
}
