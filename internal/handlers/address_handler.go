package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/room-scheduler/internal/address"
	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
)

type AddressHandler struct {
	lookup    address.Lookup
	suggester *address.Suggester
}

func NewAddressHandler(lookup address.Lookup, suggester *address.Suggester) *AddressHandler {
	return &AddressHandler{lookup: lookup, suggester: suggester}
}

func writeAddressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, address.ErrInvalidCEP):
		httperr.BadRequest(c, "invalid_cep", "CEP inválido.")
	case errors.Is(err, address.ErrNotFound):
		httperr.NotFound(c, "cep_not_found", "CEP não encontrado.")
	case errors.Is(err, address.ErrUnavailable):
		httperr.Write(c, http.StatusServiceUnavailable, "cep_unavailable", "Consulta de CEP indisponível no momento.")
	default:
		writeError(c, err, "cep_lookup_failed", "Erro ao consultar CEP.")
	}
}

func (h *AddressHandler) Lookup(c *gin.Context) {
	cep, ok := address.Normalize(c.Param("cep"))
	if !ok {
		httperr.BadRequest(c, "invalid_cep", "CEP inválido.")
		return
	}

	addr, err := h.lookup.Lookup(c.Request.Context(), cep)
	if err != nil {
		writeAddressError(c, err)
		return
	}

	c.JSON(http.StatusOK, addr)
}

// Suggest answers 204 when the value is incomplete, unchanged, or was
// superseded by a newer keystroke on the same form.
func (h *AddressHandler) Suggest(c *gin.Context) {
	form := strings.TrimSpace(c.Query("form"))
	if form == "" {
		httperr.BadRequest(c, "invalid_request", "Informe o formulário.")
		return
	}

	// one pending lookup per client and form
	key := c.ClientIP() + "|" + form

	addr, err := h.suggester.Suggest(c.Request.Context(), key, c.Query("cep"), c.Query("current"))
	if err != nil {
		writeAddressError(c, err)
		return
	}
	if addr == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, addr)
}
