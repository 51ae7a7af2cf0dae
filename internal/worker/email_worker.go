package worker

// email_worker.go
// Processes email jobs from QueueEmail.
// Sends the rendered report PDF to the operator's email via SMTP.
// All sends go through the circuit breaker to avoid hammering a
// downed relay; jobs that exhaust their retries land in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"

	"huevopos/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// MaxEmailAttempts bounds SMTP retries before a job is dead-lettered.
const MaxEmailAttempts = 3

// EmailJobPayload is the job envelope sent to QueueEmail. VentaID travels
// along so a dead-lettered delivery can be traced back to its session.
type EmailJobPayload struct {
	VentaID string `json:"venta_id"`
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// EmailWorker processes email jobs from QueueEmail.
type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
	rdb    *redis.Client
}

// NewEmailWorker creates an EmailWorker with the provided SMTP mailer.
func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, rdb: rdb}
}

// Process sends an email with the report PDF as attachment.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	attempts := 0
	err := withRetry(ctx, MaxEmailAttempts, func(attempt int) error {
		attempts = attempt + 1
		return w.cb.Execute(func() error {
			return w.mailer.SendReporte(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
		})
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Str("venta_id", payload.VentaID).Msg("email_worker: failed to send email")
		SendToDLQ(ctx, w.rdb, QueueEmail, "email", payload.VentaID, raw,
			fmt.Sprintf("max attempts (%d) exceeded: %v", MaxEmailAttempts, err), attempts)
		return
	}
	log.Info().Str("to", payload.ToEmail).Str("venta_id", payload.VentaID).Msg("email_worker: reporte sent successfully")
}
