package notify

import (
	"bytes"
	"html/template"
	"time"

	"github.com/BruksfildServices01/room-scheduler/internal/timezone"
)

var (
	confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<div style="font-family: sans-serif; color: #333;">
    <h1>Olá, {{.Name}}!</h1>
    <p>Seu agendamento foi confirmado com sucesso.</p>
    <p><strong>Data:</strong> {{.Date}}</p>
    <p><strong>Horário:</strong> {{.Time}}</p>
    <p><strong>Sala:</strong> {{.Room}}</p>
    <p>Te aguardamos!</p>
</div>`))

	cancellationTmpl = template.Must(template.New("cancellation").Parse(`
<div style="font-family: sans-serif; color: #333;">
    <h1>Olá, {{.Name}}!</h1>
    <p>Seu agendamento foi cancelado por um administrador.</p>
    <p><strong>Data:</strong> {{.Date}}</p>
    <p><strong>Horário:</strong> {{.Time}}</p>
    <p><strong>Sala:</strong> {{.Room}}</p>
</div>`))

	newScheduleTmpl = template.Must(template.New("new_schedule").Parse(`
<div style="font-family: sans-serif; color: #333; border: 1px solid #ddd; padding: 20px; border-radius: 8px;">
    <h2 style="color: #000;">Novo Agendamento Realizado</h2>
    <p>Um usuário acabou de realizar um agendamento no sistema.</p>
    <hr style="border: 0; border-top: 1px solid #eee; margin: 20px 0;" />
    <p><strong>Usuário:</strong> {{.Name}} ({{.Email}})</p>
    <p><strong>Data:</strong> {{.Date}}</p>
    <p><strong>Horário:</strong> {{.Time}}</p>
    <p><strong>Sala:</strong> {{.Room}}</p>
</div>`))
)

type Booking struct {
	Name  string
	Email string
	Room  string
	Start time.Time
}

type bookingView struct {
	Name  string
	Email string
	Room  string
	Date  string
	Time  string
}

func (b Booking) view() bookingView {
	return bookingView{
		Name:  b.Name,
		Email: b.Email,
		Room:  b.Room,
		Date:  timezone.FormatDate(b.Start),
		Time:  timezone.FormatClock(b.Start),
	}
}

func render(t *template.Template, b Booking) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, b.view()); err != nil {
		return ""
	}
	return buf.String()
}

func SchedulingConfirmation(b Booking) Message {
	return Message{
		To:      b.Email,
		Subject: "🔔 Confirmação de Agendamento",
		HTML:    render(confirmationTmpl, b),
	}
}

func SchedulingCancellation(b Booking) Message {
	return Message{
		To:      b.Email,
		Subject: "❌ Cancelamento de Agendamento",
		HTML:    render(cancellationTmpl, b),
	}
}

func NewScheduleForAdmin(adminEmail string, b Booking) Message {
	return Message{
		To:      adminEmail,
		Subject: "🔔 Novo Agendamento: " + b.Name,
		HTML:    render(newScheduleTmpl, b),
	}
}
