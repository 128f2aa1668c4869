package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/room-scheduler/internal/audit"
	"github.com/BruksfildServices01/room-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/room-scheduler/internal/dto"
	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/room-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/room-scheduler/internal/middleware"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type UserHandler struct {
	users UserStore
	audit *audit.Dispatcher
}

func NewUserHandler(users UserStore, audit *audit.Dispatcher) *UserHandler {
	return &UserHandler{users: users, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateUserRequest struct {
	ProfileRequest

	Permissions *[]string `json:"permissions"`
	IsActive    *bool     `json:"isActive"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *UserHandler) List(c *gin.Context) {
	q := parseListQuery(c)

	users, total, err := h.users.List(c.Request.Context(), repository.UserFilter{ListQuery: q})
	if err != nil {
		writeError(c, err, "failed_to_list_users", "Erro ao listar usuários.")
		return
	}

	httpresp.Paged(c, dto.NewPage(users, total, q))
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "user_not_found", "Usuário não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ======================================================
// UPDATE
// ======================================================

func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	user, err := h.apply(c, c.Param("id"), req)
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_exists", "Este e-mail já está cadastrado.")
			return
		}
		writeError(c, err, "failed_to_update_user", "Erro ao atualizar usuário.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) apply(c *gin.Context, id string, req UpdateUserRequest) (*models.User, error) {
	ctx := c.Request.Context()
	actorID := middleware.UserIDFrom(c)

	user, err := h.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.IsActive != nil && !*req.IsActive && user.ID == actorID {
		return nil, httperr.ErrBusiness("self_lockout")
	}

	var perms []identity.Permission
	if req.Permissions != nil {
		var ok bool
		perms, ok = identity.NormalizePermissions(*req.Permissions)
		if !ok {
			return nil, httperr.ErrBusiness("invalid_permission")
		}
	}

	if _, err := req.ProfileRequest.apply(user); err != nil {
		return nil, err
	}

	wasActive := user.IsActive
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Permissions != nil {
		user.Permissions = identity.PermissionStrings(perms)
	}

	if err := h.users.Update(ctx, user); err != nil {
		return nil, err
	}

	h.audit.Record(actorID, audit.ActionUserUpdated, gin.H{"userId": user.ID})
	if req.Permissions != nil {
		h.audit.Record(actorID, audit.ActionPermissionsSet, gin.H{"userId": user.ID, "permissions": user.Permissions})
	}
	switch {
	case !wasActive && user.IsActive:
		h.audit.Record(actorID, audit.ActionUserActivated, gin.H{"userId": user.ID})
	case wasActive && !user.IsActive:
		h.audit.Record(actorID, audit.ActionUserDeactivated, gin.H{"userId": user.ID})
	}

	return user, nil
}
