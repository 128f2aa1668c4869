package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Mailer queues messages and delivers them in the background. Delivery
// errors are logged and dropped.
type Mailer struct {
	sender Sender
	queue  chan Message

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewMailer(sender Sender) *Mailer {
	m := &Mailer{
		sender: sender,
		queue:  make(chan Message, 50),
		done:   make(chan struct{}),
	}

	go m.worker()
	return m
}

func (m *Mailer) worker() {
	defer close(m.done)

	for msg := range m.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := m.sender.Send(ctx, msg); err != nil {
			log.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("failed to send email")
		}
		cancel()
	}
}

func (m *Mailer) Enqueue(msg Message) {
	if msg.To == "" {
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return
	}

	select {
	case m.queue <- msg:
	default:
		log.Warn().Str("to", msg.To).Msg("mail queue full, dropping message")
	}
}

func (m *Mailer) Close() {
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		close(m.queue)
	}
	m.mu.Unlock()

	<-m.done
}
