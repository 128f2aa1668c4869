package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/room-scheduler/internal/audit"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
	"github.com/BruksfildServices01/room-scheduler/internal/timezone"
)

const LinkTTL = 15 * time.Minute

var ErrDisabled = errors.New("export_disabled")

type Result struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Rows      int       `json:"rows"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LogExporter struct {
	store ObjectStore
	now   func() time.Time
}

// NewLogExporter accepts a nil store; Export then reports ErrDisabled.
func NewLogExporter(store ObjectStore) *LogExporter {
	return &LogExporter{store: store, now: timezone.Now}
}

func (e *LogExporter) Enabled() bool {
	return e != nil && e.store != nil
}

func (e *LogExporter) Export(ctx context.Context, ownerID string, logs []models.AuditLog) (*Result, error) {
	if !e.Enabled() {
		return nil, ErrDisabled
	}

	body, err := encodeLogs(logs)
	if err != nil {
		return nil, err
	}

	now := e.now()
	key := fmt.Sprintf("exports/logs/%s/%s-%s.csv", ownerID, now.Format("20060102-150405"), uuid.NewString()[:8])

	if err := e.store.Put(ctx, key, body, "text/csv; charset=utf-8"); err != nil {
		return nil, err
	}

	url, err := e.store.PresignGet(ctx, key, LinkTTL)
	if err != nil {
		return nil, err
	}

	return &Result{
		Key:       key,
		URL:       url,
		Rows:      len(logs),
		ExpiresAt: now.Add(LinkTTL),
	}, nil
}

func encodeLogs(logs []models.AuditLog) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Cliente", "Tipo de atividade", "Módulo", "Data e horário", "Detalhes"}); err != nil {
		return nil, err
	}

	loc := timezone.Current()
	for _, l := range logs {
		client := ""
		if l.User != nil {
			client = l.User.FullName()
		}

		row := []string{
			client,
			audit.Action(l.Action).Label(),
			audit.Module(l.Module).Label(),
			l.CreatedAt.In(loc).Format(timezone.DisplayLayout+" "+timezone.ClockLayout),
			l.Details,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
