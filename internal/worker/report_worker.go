package worker

// report_worker.go
// Processes report export jobs from QueueReporte.
// Builds the sale report, renders it as PDF and, when the operator
// provided an email, enqueues a follow-up email job with the file attached.

import (
	"context"
	"encoding/json"
	"fmt"

	"huevopos/internal/infra"
	"huevopos/internal/service"

	"github.com/rs/zerolog/log"
)

// ReporteJobPayload is the job envelope sent to QueueReporte.
type ReporteJobPayload struct {
	VentaID string  `json:"venta_id"`
	Email   *string `json:"email,omitempty"`
}

// ReporteWorker renders sale reports to PDF in the background.
type ReporteWorker struct {
	ventas         service.VentaService
	dispatcher     *Dispatcher
	pdfStoragePath string
}

// NewReporteWorker wires all dependencies for the report worker.
func NewReporteWorker(ventas service.VentaService, dispatcher *Dispatcher, pdfStoragePath string) *ReporteWorker {
	return &ReporteWorker{
		ventas:         ventas,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single report export job:
//  1. Parse ReporteJobPayload from the job envelope
//  2. Build the full report for the sale (ledgers + derived totals)
//  3. Render the PDF to pdfStoragePath
//  4. Optionally enqueue an email job with the PDF attached
func (w *ReporteWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReporteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("report_worker: invalid payload")
		return
	}
	if payload.VentaID == "" {
		log.Warn().Msg("report_worker: empty venta_id — skipping")
		return
	}

	reporte, err := w.ventas.Reporte(ctx, payload.VentaID)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("report_worker: failed to build report")
		return
	}

	pdfPath, err := infra.GenerateReportePDF(reporte, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("report_worker: PDF generation failed")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("venta_id", payload.VentaID).Msg("report_worker: PDF generated")

	if payload.Email != nil && *payload.Email != "" {
		emailJob := EmailJobPayload{
			VentaID: payload.VentaID,
			ToEmail: *payload.Email,
			Subject: fmt.Sprintf("Reporte de %s", reporte.Nombre),
			Body: fmt.Sprintf(
				"Adjunto encontrarás el reporte de %s.\nVentas: $%s\nGastos: $%s\nFondos netos: $%s",
				reporte.Nombre,
				reporte.TotalVentas.StringFixed(2),
				reporte.TotalGastos.StringFixed(2),
				reporte.FondosNetos.StringFixed(2),
			),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.Email).Msg("report_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", *payload.Email).Msg("report_worker: email job enqueued")
		}
	}
}
