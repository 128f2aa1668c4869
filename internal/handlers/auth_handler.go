package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-scheduler/internal/address"
	"github.com/BruksfildServices01/room-scheduler/internal/audit"
	"github.com/BruksfildServices01/room-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/middleware"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
	"github.com/BruksfildServices01/room-scheduler/internal/session"
	"github.com/BruksfildServices01/room-scheduler/internal/validators"
)

var (
	errInvalidCredentials = errors.New("invalid_credentials")
	errInactiveAccount    = errors.New("inactive_account")
	errEmailTaken         = errors.New("email_already_exists")
	errEmailDomain        = errors.New("invalid_email_domain")
)

type AuthHandler struct {
	users       UserStore
	sessions    *session.Resolver
	audit       *audit.Dispatcher
	emailDomain validators.EmailDomainCheck
}

func NewAuthHandler(users UserStore, sessions *session.Resolver, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{
		users:       users,
		sessions:    sessions,
		audit:       audit,
		emailDomain: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type SignUpRequest struct {
	Name         string `json:"name" form:"name" binding:"required,min=2"`
	LastName     string `json:"lastName" form:"lastName" binding:"required,min=2"`
	Email        string `json:"email" form:"email" binding:"required,email"`
	Password     string `json:"password" form:"password" binding:"required,min=6"`
	Cep          string `json:"cep" form:"cep" binding:"required"`
	Street       string `json:"street" form:"street" binding:"required"`
	Number       string `json:"number" form:"number" binding:"required"`
	Complement   string `json:"complement" form:"complement"`
	Neighborhood string `json:"neighborhood" form:"neighborhood" binding:"required"`
	City         string `json:"city" form:"city" binding:"required"`
	State        string `json:"state" form:"state" binding:"required,len=2"`
}

// --------- Shared flows ---------

// authenticate checks the credentials and issues a session token.
func (h *AuthHandler) authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := h.users.FindByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", errInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", errInactiveAccount
	}

	token, _, err := h.sessions.Manager().Issue(user)
	if err != nil {
		return nil, "", err
	}

	h.audit.Record(user.ID, audit.ActionLogin, nil)
	return user, token, nil
}

// register creates an active USER with the default permissions.
func (h *AuthHandler) register(ctx context.Context, req SignUpRequest) (*models.User, error) {
	email := validators.NormalizeEmail(req.Email)
	if h.emailDomain != nil && !h.emailDomain(ctx, email) {
		return nil, errEmailDomain
	}

	cep, ok := address.Normalize(req.Cep)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_cep")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: string(hashed),
		Cep:          cep,
		Street:       strings.TrimSpace(req.Street),
		Number:       strings.TrimSpace(req.Number),
		Complement:   strings.TrimSpace(req.Complement),
		Neighborhood: strings.TrimSpace(req.Neighborhood),
		City:         strings.TrimSpace(req.City),
		State:        strings.ToUpper(strings.TrimSpace(req.State)),
		Role:         string(identity.RoleUser),
		Permissions:  identity.PermissionStrings(identity.DefaultPermissions),
		IsActive:     true,
	}

	if err := h.users.Create(ctx, &user); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, errEmailTaken
		}
		return nil, err
	}

	h.audit.Record(user.ID, audit.ActionSignUp, nil)
	return &user, nil
}

func (h *AuthHandler) revoke(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return
	}
	if err := h.sessions.Revoke(c.Request.Context(), claims); err != nil {
		_ = c.Error(err)
	}
	h.audit.Record(claims.Subject, audit.ActionLogout, nil)
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	user, token, err := h.authenticate(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, errInvalidCredentials):
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	case errors.Is(err, errInactiveAccount):
		httperr.Forbidden(c, "inactive_account", "Sua conta está desativada.")
		return
	case err != nil:
		writeError(c, err, "failed_to_sign_in", "Erro ao entrar.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.revoke(c)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	user, err := h.register(c.Request.Context(), req)
	switch {
	case errors.Is(err, errEmailTaken):
		httperr.Conflict(c, "email_already_exists", "Este e-mail já está cadastrado.")
		return
	case errors.Is(err, errEmailDomain):
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	case err != nil:
		writeError(c, err, "failed_to_create_user", "Erro ao criar usuário.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}
