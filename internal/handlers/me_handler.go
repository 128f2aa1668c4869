package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/room-scheduler/internal/address"
	"github.com/BruksfildServices01/room-scheduler/internal/audit"
	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/middleware"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
	"github.com/BruksfildServices01/room-scheduler/internal/validators"
)

type MeHandler struct {
	users UserStore
	audit *audit.Dispatcher
}

func NewMeHandler(users UserStore, audit *audit.Dispatcher) *MeHandler {
	return &MeHandler{users: users, audit: audit}
}

// ProfileRequest is a partial update: nil fields are left untouched.
type ProfileRequest struct {
	Name         *string `json:"name" form:"name" binding:"omitempty,min=2"`
	LastName     *string `json:"lastName" form:"lastName" binding:"omitempty,min=2"`
	Email        *string `json:"email" form:"email" binding:"omitempty,email"`
	Password     *string `json:"password" form:"password" binding:"omitempty,min=6"`
	Cep          *string `json:"cep" form:"cep"`
	Street       *string `json:"street" form:"street"`
	Number       *string `json:"number" form:"number"`
	Complement   *string `json:"complement" form:"complement"`
	Neighborhood *string `json:"neighborhood" form:"neighborhood"`
	City         *string `json:"city" form:"city"`
	State        *string `json:"state" form:"state" binding:"omitempty,len=2"`
}

// apply copies the set fields onto user and reports whether the email
// changed.
func (req ProfileRequest) apply(user *models.User) (emailChanged bool, err error) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}

	set(&user.Name, req.Name)
	set(&user.LastName, req.LastName)
	set(&user.Street, req.Street)
	set(&user.Number, req.Number)
	set(&user.Complement, req.Complement)
	set(&user.Neighborhood, req.Neighborhood)
	set(&user.City, req.City)
	if req.State != nil {
		user.State = strings.ToUpper(strings.TrimSpace(*req.State))
	}

	if req.Cep != nil {
		cep, ok := address.Normalize(*req.Cep)
		if !ok {
			return false, httperr.ErrBusiness("invalid_cep")
		}
		user.Cep = cep
	}

	if req.Email != nil {
		email := validators.NormalizeEmail(*req.Email)
		if email != user.Email {
			user.Email = email
			emailChanged = true
		}
	}

	if req.Password != nil {
		if len(*req.Password) < 6 {
			return false, httperr.ErrBusiness("invalid_password")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return false, err
		}
		user.PasswordHash = string(hashed)
	}

	return emailChanged, nil
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), middleware.UserIDFrom(c))
	if err != nil {
		writeError(c, err, "user_not_found", "Usuário não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	user, err := h.updateProfile(c, middleware.UserIDFrom(c), req)
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_exists", "Este e-mail já está cadastrado.")
			return
		}
		writeError(c, err, "failed_to_update_profile", "Erro ao atualizar perfil.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *MeHandler) updateProfile(c *gin.Context, userID string, req ProfileRequest) (*models.User, error) {
	ctx := c.Request.Context()

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	emailChanged, err := req.apply(user)
	if err != nil {
		return nil, err
	}

	if err := h.users.Update(ctx, user); err != nil {
		return nil, err
	}

	h.audit.Record(user.ID, audit.ActionProfileUpdated, nil)
	if emailChanged {
		h.audit.Record(user.ID, audit.ActionEmailUpdated, gin.H{"email": user.Email})
	}

	return user, nil
}
