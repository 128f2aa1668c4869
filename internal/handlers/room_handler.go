package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/room-scheduler/internal/audit"
	"github.com/BruksfildServices01/room-scheduler/internal/domain/room"
	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/room-scheduler/internal/middleware"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

type RoomHandler struct {
	rooms RoomStore
	audit *audit.Dispatcher
}

func NewRoomHandler(rooms RoomStore, audit *audit.Dispatcher) *RoomHandler {
	return &RoomHandler{rooms: rooms, audit: audit}
}

type CreateRoomRequest struct {
	Name         string `json:"name" binding:"required"`
	StartTime    string `json:"startTime" binding:"required"`
	EndTime      string `json:"endTime" binding:"required"`
	SlotDuration int    `json:"slotDuration" binding:"required"`
}

func (r CreateRoomRequest) toModel() (models.Room, error) {
	if _, err := room.Validate(r.StartTime, r.EndTime, r.SlotDuration); err != nil {
		return models.Room{}, err
	}
	return models.Room{
		Name:         strings.TrimSpace(r.Name),
		StartTime:    strings.TrimSpace(r.StartTime),
		EndTime:      strings.TrimSpace(r.EndTime),
		SlotDuration: r.SlotDuration,
		IsActive:     true,
	}, nil
}

func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.rooms.ListActive(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed_to_list_rooms", "Erro ao listar salas.")
		return
	}

	httpresp.List(c, rooms)
}

func (h *RoomHandler) Create(c *gin.Context) {
	var req []CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}
	if len(req) == 0 {
		httperr.BadRequest(c, "invalid_request", "Informe ao menos uma sala.")
		return
	}

	rooms, err := h.createRooms(c, req)
	if err != nil {
		writeError(c, err, "failed_to_create_rooms", "Erro ao cadastrar salas.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": rooms})
}

func (h *RoomHandler) createRooms(c *gin.Context, req []CreateRoomRequest) ([]models.Room, error) {
	rooms := make([]models.Room, 0, len(req))
	for _, r := range req {
		m, err := r.toModel()
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, m)
	}

	if err := h.rooms.CreateMany(c.Request.Context(), rooms); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rooms))
	for _, r := range rooms {
		names = append(names, r.Name)
	}
	h.audit.Record(middleware.UserIDFrom(c), audit.ActionRoomsCreated, gin.H{"rooms": names})

	return rooms, nil
}
