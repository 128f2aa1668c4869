package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/room-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/room-scheduler/internal/middleware"
	"github.com/BruksfildServices01/room-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/room-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	changeStatus *ucAppointment.ChangeStatus
	list         *ucAppointment.ListAppointments
	availability *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	changeStatus *ucAppointment.ChangeStatus,
	list *ucAppointment.ListAppointments,
	availability *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		changeStatus: changeStatus,
		list:         list,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Date      string `json:"date" form:"date" binding:"required"`
	StartTime string `json:"startTime" form:"startTime" binding:"required"`
	RoomID    string `json:"roomId" form:"roomId" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		UserID: middleware.UserIDFrom(c),
		RoomID: req.RoomID,
		Date:   req.Date,
		Time:   req.StartTime,
	})
	if err != nil {
		writeError(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	httpresp.Created(c, ucAppointment.ToListDTO(*ap))
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	f := domain.ListFilter{
		ListQuery: parseListQuery(c),
		RoomID:    c.Query("roomId"),
	}

	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			writeError(c, err, "invalid_status", "Status inválido.")
			return
		}
		f.Status = status
	}

	page, err := h.list.Execute(c.Request.Context(), actorFrom(c), f)
	if err != nil {
		writeError(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.Paged(c, page)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	to, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeError(c, err, "invalid_status", "Status inválido.")
		return
	}

	ap, err := h.changeStatus.Execute(c.Request.Context(), c.Param("id"), to, actorFrom(c))
	if err != nil {
		writeError(c, err, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		return
	}

	httpresp.OK(c, ucAppointment.ToListDTO(*ap))
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	roomID := c.Query("roomId")
	if roomID == "" {
		httperr.BadRequest(c, "invalid_request", "Informe a sala.")
		return
	}

	date, err := timezone.ParseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		RoomID: roomID,
		Date:   date,
	})
	if err != nil {
		writeError(c, err, "failed_to_get_availability", "Erro ao consultar horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": slots})
}
