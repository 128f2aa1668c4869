package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/room-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/room-scheduler/internal/middleware"
	"github.com/BruksfildServices01/room-scheduler/internal/web"
)

// PublicWebHandler serves the pages reachable without a session: sign-in,
// admin sign-in and sign-up. Sign-out lives here too since it ends on the
// sign-in page.
type PublicWebHandler struct {
	auth         *AuthHandler
	secureCookie bool
}

func NewPublicWebHandler(auth *AuthHandler, secureCookie bool) *PublicWebHandler {
	return &PublicWebHandler{auth: auth, secureCookie: secureCookie}
}

func (h *PublicWebHandler) setSession(c *gin.Context, token string) {
	maxAge := int(h.auth.sessions.Manager().TTL() / time.Second)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.secureCookie, true)
}

func (h *PublicWebHandler) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookie, true)
}

// Root only runs when the guard let the request through, which it never
// does for "/"; the redirect covers a disabled guard.
func (h *PublicWebHandler) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, access.SignInPath)
}

// --------------------------------------------------
// Sign in
// --------------------------------------------------

func (h *PublicWebHandler) renderSignIn(c *gin.Context, status int, admin bool, email, message string) {
	c.HTML(status, "signin", gin.H{
		"Layout":     web.Layout{},
		"Admin":      admin,
		"Registered": c.Query("registered") != "",
		"Email":      email,
		"Error":      message,
	})
}

func (h *PublicWebHandler) SignInPage(c *gin.Context) {
	h.renderSignIn(c, http.StatusOK, false, "", "")
}

func (h *PublicWebHandler) AdminSignInPage(c *gin.Context) {
	h.renderSignIn(c, http.StatusOK, true, "", "")
}

func (h *PublicWebHandler) SignIn(c *gin.Context) {
	h.signIn(c, false)
}

func (h *PublicWebHandler) AdminSignIn(c *gin.Context) {
	h.signIn(c, true)
}

func (h *PublicWebHandler) signIn(c *gin.Context, admin bool) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderSignIn(c, http.StatusBadRequest, admin, req.Email, "Informe e-mail e senha válidos.")
		return
	}

	user, token, err := h.auth.authenticate(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, errInvalidCredentials):
		h.renderSignIn(c, http.StatusUnauthorized, admin, req.Email, "E-mail ou senha inválidos.")
		return
	case errors.Is(err, errInactiveAccount):
		h.renderSignIn(c, http.StatusForbidden, admin, req.Email, "Sua conta está desativada.")
		return
	case err != nil:
		_ = c.Error(err)
		h.renderSignIn(c, http.StatusInternalServerError, admin, req.Email, "Não foi possível entrar. Tente novamente.")
		return
	}

	p := user.Principal()
	if admin && !p.IsAdmin() {
		h.renderSignIn(c, http.StatusForbidden, admin, req.Email, "Acesso restrito a administradores.")
		return
	}

	h.setSession(c, token)
	c.Redirect(http.StatusFound, p.Home())
}

// --------------------------------------------------
// Sign up
// --------------------------------------------------

func (h *PublicWebHandler) renderSignUp(c *gin.Context, status int, form SignUpRequest, message string) {
	form.Password = ""
	c.HTML(status, "signup", gin.H{
		"Layout": web.Layout{},
		"Form":   form,
		"Error":  message,
	})
}

func (h *PublicWebHandler) SignUpPage(c *gin.Context) {
	h.renderSignUp(c, http.StatusOK, SignUpRequest{}, "")
}

func (h *PublicWebHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderSignUp(c, http.StatusBadRequest, req, "Preencha todos os campos obrigatórios.")
		return
	}

	_, err := h.auth.register(c.Request.Context(), req)
	switch {
	case errors.Is(err, errEmailTaken):
		h.renderSignUp(c, http.StatusConflict, req, "Este e-mail já está cadastrado.")
		return
	case errors.Is(err, errEmailDomain):
		h.renderSignUp(c, http.StatusBadRequest, req, "O domínio do e-mail informado não parece ser válido.")
		return
	case err != nil:
		_ = c.Error(err)
		h.renderSignUp(c, http.StatusBadRequest, req, messageFor(err))
		return
	}

	c.Redirect(http.StatusFound, access.SignInPath+"?registered=1")
}

// --------------------------------------------------
// Sign out
// --------------------------------------------------

func (h *PublicWebHandler) SignOut(c *gin.Context) {
	h.auth.revoke(c)
	h.clearSession(c)
	c.Redirect(http.StatusFound, access.SignInPath)
}
