package export

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/room-scheduler/internal/audit"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

type memoryStore struct {
	objects map[string][]byte
	ttl     time.Duration
}

func (m *memoryStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = body
	return nil
}

func (m *memoryStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	m.ttl = ttl
	return "https://files.example/" + key + "?sig=abc", nil
}

func TestExportWritesCSV(t *testing.T) {
	store := &memoryStore{}
	e := NewLogExporter(store)
	fixed := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	e.now = func() time.Time { return fixed }

	logs := []models.AuditLog{
		{
			Action:    string(audit.ActionAppointmentCreated),
			Module:    string(audit.ModuleAppointments),
			Details:   "Sala 1, 10/03/2025 09:00",
			CreatedAt: fixed,
			User:      &models.User{Name: "Ana", LastName: "Souza"},
		},
		{
			Action:    string(audit.ActionLogin),
			Module:    string(audit.ModuleAccount),
			CreatedAt: fixed,
		},
	}

	res, err := e.Export(context.Background(), "u-1", logs)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if res.Rows != 2 || !strings.HasPrefix(res.Key, "exports/logs/u-1/") {
		t.Errorf("unexpected result %+v", res)
	}
	if store.ttl != LinkTTL || !res.ExpiresAt.Equal(fixed.Add(LinkTTL)) {
		t.Errorf("link should expire in %s", LinkTTL)
	}

	records, err := csv.NewReader(strings.NewReader(string(store.objects[res.Key]))).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[1][0] != "Ana Souza" || records[1][1] != "Criação de agendamento" {
		t.Errorf("unexpected row %v", records[1])
	}
	if records[2][0] != "" {
		t.Errorf("anonymous row should have empty client, got %q", records[2][0])
	}
}

func TestExportDisabled(t *testing.T) {
	e := NewLogExporter(nil)
	if _, err := e.Export(context.Background(), "u-1", nil); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
