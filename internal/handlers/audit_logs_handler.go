package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/room-scheduler/internal/audit"
	"github.com/BruksfildServices01/room-scheduler/internal/dto"
	"github.com/BruksfildServices01/room-scheduler/internal/export"
	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/room-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/room-scheduler/internal/middleware"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

const maxExportRows = 5000

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs     LogStore
	exporter *export.LogExporter
	audit    *audit.Dispatcher
}

func NewAuditLogsHandler(logs LogStore, exporter *export.LogExporter, audit *audit.Dispatcher) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, exporter: exporter, audit: audit}
}

type LogDTO struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	ClientName  string `json:"clientName"`
	Action      string `json:"action"`
	ActionLabel string `json:"actionLabel"`
	Module      string `json:"module"`
	ModuleLabel string `json:"moduleLabel"`
	Details     string `json:"details"`
	CreatedAt   string `json:"createdAt"`
}

func toLogDTO(l models.AuditLog) LogDTO {
	out := LogDTO{
		ID:          l.ID,
		Action:      l.Action,
		ActionLabel: audit.Action(l.Action).Label(),
		Module:      l.Module,
		ModuleLabel: audit.Module(l.Module).Label(),
		Details:     l.Details,
		CreatedAt:   l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if l.UserID != nil {
		out.UserID = *l.UserID
	}
	if l.User != nil {
		out.ClientName = l.User.FullName()
	}
	return out
}

// filter scopes non-admins to their own activity.
func (h *AuditLogsHandler) filter(c *gin.Context) repository.LogFilter {
	f := repository.LogFilter{
		ListQuery: parseListQuery(c),
		Module:    strings.TrimSpace(c.Query("module")),
	}

	p, _ := middleware.PrincipalFrom(c)
	if !p.IsAdmin() {
		f.UserID = p.ID
	}
	return f
}

// ======================================================
// LIST
// ======================================================

func (h *AuditLogsHandler) List(c *gin.Context) {
	f := h.filter(c)

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	out := make([]LogDTO, 0, len(logs))
	for _, l := range logs {
		out = append(out, toLogDTO(l))
	}

	httpresp.Paged(c, dto.NewPage(out, total, f.ListQuery))
}

// ======================================================
// EXPORT
// ======================================================

func (h *AuditLogsHandler) Export(c *gin.Context) {
	if !h.exporter.Enabled() {
		httperr.Write(c, http.StatusServiceUnavailable, "export_disabled", "Exportação de logs indisponível.")
		return
	}

	f := h.filter(c)
	f.Page = 1
	f.Limit = maxExportRows

	logs, _, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	actorID := middleware.UserIDFrom(c)
	res, err := h.exporter.Export(c.Request.Context(), actorID, logs)
	if err != nil {
		if errors.Is(err, export.ErrDisabled) {
			httperr.Write(c, http.StatusServiceUnavailable, "export_disabled", "Exportação de logs indisponível.")
			return
		}
		writeError(c, err, "audit_export_failed", "Erro ao exportar logs.")
		return
	}

	h.audit.Record(actorID, audit.ActionLogsExported, gin.H{"rows": res.Rows, "key": res.Key})
	httpresp.OK(c, res)
}
