package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
)

type businessMessage struct {
	status  int
	message string
}

var businessMessages = map[string]businessMessage{
	// agendamentos
	"invalid_date_or_time":  {http.StatusBadRequest, "Data ou hora inválida."},
	"slot_in_past":          {http.StatusBadRequest, "Não é possível agendar um horário que já passou."},
	"outside_room_hours":    {http.StatusBadRequest, "Horário fora do funcionamento da sala."},
	"time_conflict":         {http.StatusConflict, "Conflito de horário."},
	"room_not_found":        {http.StatusNotFound, "Sala não encontrada."},
	"appointment_not_found": {http.StatusNotFound, "Agendamento não encontrado."},
	"invalid_status":        {http.StatusBadRequest, "Status inválido."},
	"invalid_state":         {http.StatusConflict, "Este agendamento não pode mais ser alterado."},
	"forbidden_transition":  {http.StatusForbidden, "Você não tem permissão para esta alteração."},

	// salas
	"invalid_time":          {http.StatusBadRequest, "Horário inválido. Use o formato HH:MM."},
	"invalid_time_range":    {http.StatusBadRequest, "Horário de funcionamento inválido."},
	"invalid_slot_duration": {http.StatusBadRequest, "Intervalo de agendamento inválido."},

	// conta
	"invalid_cep":        {http.StatusBadRequest, "CEP inválido."},
	"invalid_password":   {http.StatusBadRequest, "A senha deve ter ao menos 6 caracteres."},
	"invalid_permission": {http.StatusBadRequest, "Permissão inválida."},
	"self_lockout":       {http.StatusForbidden, "Você não pode desativar a própria conta."},
	"forbidden":          {http.StatusForbidden, "Acesso restrito a administradores."},
}

// writeError maps business errors to their status and message. Anything
// else is logged and reported as an internal error.
func writeError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	if code, ok := httperr.BusinessCode(err); ok {
		if m, found := businessMessages[code]; found {
			httperr.Write(c, m.status, code, m.message)
			return
		}
		httperr.BadRequest(c, code, "Requisição inválida.")
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "not_found", "Registro não encontrado.")
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg(fallbackCode)
	httperr.Internal(c, fallbackCode, fallbackMessage)
}

// messageFor returns the user-facing text for err, for the web pages.
func messageFor(err error) string {
	if code, ok := httperr.BusinessCode(err); ok {
		if m, found := businessMessages[code]; found {
			return m.message
		}
	}
	return "Não foi possível concluir a operação."
}
