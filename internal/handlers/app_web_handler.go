package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/room-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/room-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/room-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/room-scheduler/internal/domain/room"
	"github.com/BruksfildServices01/room-scheduler/internal/dto"
	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/room-scheduler/internal/middleware"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
	"github.com/BruksfildServices01/room-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/room-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/room-scheduler/internal/web"
)

// AppWebHandler serves the dashboard pages. Access to each path has
// already been decided by the web guard.
type AppWebHandler struct {
	appointments *AppointmentHandler
	rooms        *RoomHandler
	logs         *AuditLogsHandler
	users        *UserHandler
	me           *MeHandler
}

func NewAppWebHandler(
	appointments *AppointmentHandler,
	rooms *RoomHandler,
	logs *AuditLogsHandler,
	users *UserHandler,
	me *MeHandler,
) *AppWebHandler {
	return &AppWebHandler{
		appointments: appointments,
		rooms:        rooms,
		logs:         logs,
		users:        users,
		me:           me,
	}
}

type statusOption struct {
	Value string
	Label string
}

var statusOptions = []statusOption{
	{string(domain.StatusPending), domain.StatusPending.Label()},
	{string(domain.StatusConfirmed), domain.StatusConfirmed.Label()},
	{string(domain.StatusCancelled), domain.StatusCancelled.Label()},
}

func (h *AppWebHandler) layout(c *gin.Context) web.Layout {
	p, _ := middleware.PrincipalFrom(c)
	l := web.NewLayout(p, c.Request.URL.Path)
	l.Notice = c.Query("notice")
	l.Error = c.Query("error")
	return l
}

// page fills the keys shared by every list page.
func (h *AppWebHandler) page(c *gin.Context, q dto.ListQuery, page any) gin.H {
	filterDate := ""
	if q.Date != nil {
		filterDate = q.Date.Format(timezone.DateLayout)
	}
	return gin.H{
		"Layout":      h.layout(c),
		"Filter":      q,
		"FilterDate":  filterDate,
		"FilterOrder": string(q.Order),
		"Page":        page,
		"Query":       c.Request.URL.Query(),
	}
}

// back redirects to path with a notice or an error for the next render.
func back(c *gin.Context, path string, err error, notice string) {
	v := url.Values{}
	if err != nil {
		v.Set("error", messageFor(err))
	} else {
		v.Set("notice", notice)
	}
	c.Redirect(http.StatusFound, path+"?"+v.Encode())
}

func principal(c *gin.Context) identity.Principal {
	p, _ := middleware.PrincipalFrom(c)
	return p
}

// adminOnly sends non-admins back to path. The guard lets every active
// user reach their own dashboard actions.
func adminOnly(c *gin.Context, path string) bool {
	if principal(c).IsAdmin() {
		return true
	}
	back(c, path, httperr.ErrBusiness("forbidden"), "")
	return false
}

// --------------------------------------------------
// Agendamentos
// --------------------------------------------------

func (h *AppWebHandler) Dashboard(c *gin.Context) {
	q := parseListQuery(c)
	f := domain.ListFilter{ListQuery: q}

	filterStatus := ""
	if status, err := domain.ParseStatus(c.Query("status")); err == nil {
		f.Status = status
		filterStatus = string(status)
	}

	page, err := h.appointments.list.Execute(c.Request.Context(), actorFrom(c), f)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Erro ao carregar agendamentos.")
		return
	}

	rooms, err := h.rooms.rooms.ListActive(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		rooms = []models.Room{}
	}

	data := h.page(c, q, page)
	data["Statuses"] = statusOptions
	data["FilterStatus"] = filterStatus
	data["Rooms"] = rooms

	c.HTML(http.StatusOK, "appointments", data)
}

func (h *AppWebHandler) CreateAppointment(c *gin.Context) {
	home := principal(c).Home()

	var req CreateAppointmentRequest
	if err := c.ShouldBind(&req); err != nil {
		back(c, home, err, "")
		return
	}

	_, err := h.appointments.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		UserID: middleware.UserIDFrom(c),
		RoomID: req.RoomID,
		Date:   req.Date,
		Time:   req.StartTime,
	})
	back(c, home, err, "Agendamento solicitado. Aguarde a confirmação.")
}

func (h *AppWebHandler) UpdateAppointmentStatus(c *gin.Context) {
	home := principal(c).Home()

	to, err := domain.ParseStatus(c.PostForm("status"))
	if err != nil {
		back(c, home, err, "")
		return
	}

	_, err = h.appointments.changeStatus.Execute(c.Request.Context(), c.Param("appointmentId"), to, actorFrom(c))
	back(c, home, err, "Agendamento atualizado.")
}

// SaveSettings registers a room from the settings form, which carries the
// opening hours as "08:00 - 18:00" and the slot size as "30 minutos".
func (h *AppWebHandler) SaveSettings(c *gin.Context) {
	home := principal(c).Home()
	if !adminOnly(c, home) {
		return
	}

	start, end, err := room.ParseTimeRange(c.PostForm("timeRange"))
	if err != nil {
		back(c, home, err, "")
		return
	}
	slot, err := room.ParseInterval(c.PostForm("interval"))
	if err != nil {
		back(c, home, err, "")
		return
	}

	_, err = h.rooms.createRooms(c, []CreateRoomRequest{{
		Name:         c.PostForm("name"),
		StartTime:    start,
		EndTime:      end,
		SlotDuration: slot,
	}})
	back(c, home, err, "Ajustes salvos.")
}

// --------------------------------------------------
// Logs
// --------------------------------------------------

func (h *AppWebHandler) Logs(c *gin.Context) {
	f := h.logs.filter(c)

	logs, total, err := h.logs.logs.List(c.Request.Context(), f)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Erro ao carregar logs.")
		return
	}

	out := make([]LogDTO, 0, len(logs))
	for _, l := range logs {
		out = append(out, toLogDTO(l))
	}

	c.HTML(http.StatusOK, "logs", h.page(c, f.ListQuery, dto.NewPage(out, total, f.ListQuery)))
}

func (h *AppWebHandler) ExportLogs(c *gin.Context) {
	logsPath := principal(c).Home() + "/logs"
	if !adminOnly(c, logsPath) {
		return
	}

	f := h.logs.filter(c)
	f.Page = 1
	f.Limit = maxExportRows

	logs, _, err := h.logs.logs.List(c.Request.Context(), f)
	if err != nil {
		back(c, logsPath, err, "")
		return
	}

	actorID := middleware.UserIDFrom(c)
	res, err := h.logs.exporter.Export(c.Request.Context(), actorID, logs)
	if err != nil {
		_ = c.Error(err)
		back(c, logsPath, err, "")
		return
	}

	h.logs.audit.Record(actorID, audit.ActionLogsExported, gin.H{"rows": res.Rows, "key": res.Key})

	c.Redirect(http.StatusFound, res.URL)
}

// --------------------------------------------------
// Minha conta
// --------------------------------------------------

func (h *AppWebHandler) Profile(c *gin.Context) {
	user, err := h.me.users.GetByID(c.Request.Context(), middleware.UserIDFrom(c))
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Erro ao carregar perfil.")
		return
	}

	c.HTML(http.StatusOK, "profile", gin.H{
		"Layout": h.layout(c),
		"User":   user,
	})
}

func (h *AppWebHandler) UpdateProfile(c *gin.Context) {
	profile := principal(c).ProfilePath()

	_, err := h.me.updateProfile(c, middleware.UserIDFrom(c), profileFromForm(c))
	back(c, profile, err, "Perfil atualizado.")
}

// profileFromForm keeps only the posted fields. A blank password means
// "keep the current one".
func profileFromForm(c *gin.Context) ProfileRequest {
	field := func(name string) *string {
		if v, ok := c.GetPostForm(name); ok {
			return &v
		}
		return nil
	}

	req := ProfileRequest{
		Name:         field("name"),
		LastName:     field("lastName"),
		Email:        field("email"),
		Cep:          field("cep"),
		Street:       field("street"),
		Number:       field("number"),
		Complement:   field("complement"),
		Neighborhood: field("neighborhood"),
		City:         field("city"),
		State:        field("state"),
	}
	if pw := c.PostForm("password"); pw != "" {
		req.Password = &pw
	}
	return req
}

// --------------------------------------------------
// Usuários
// --------------------------------------------------

func (h *AppWebHandler) Users(c *gin.Context) {
	q := parseListQuery(c)

	users, total, err := h.users.users.List(c.Request.Context(), repository.UserFilter{ListQuery: q})
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Erro ao carregar usuários.")
		return
	}

	data := h.page(c, q, dto.NewPage(users, total, q))
	data["Permissions"] = web.Permissions()

	c.HTML(http.StatusOK, "users", data)
}

// UpdateUser applies the permission checkboxes and the active toggle.
// An unchecked box is absent from the form, so the permission list is
// always replaced.
func (h *AppWebHandler) UpdateUser(c *gin.Context) {
	usersPath := principal(c).Home() + "/users"

	perms := c.PostFormArray("permissions")
	req := UpdateUserRequest{Permissions: &perms}
	if raw, ok := c.GetPostForm("isActive"); ok {
		active := raw == "true"
		req.IsActive = &active
	}

	_, err := h.users.apply(c, c.Param("userId"), req)
	back(c, usersPath, err, "Usuário atualizado.")
}
