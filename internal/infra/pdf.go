package infra

// pdf.go — Session summary document generation using go-pdf/fpdf.
// Renders one page (A4) per export with:
//   - Session name, id and creation date header
//   - Transaction table (time, tier, qty, unit price, total, received, change, location)
//   - Expense table (time, description, amount)
//   - Totals block: total sales, total expenses, net funds
//
// The output file is saved to storagePath/reporte_venta_<id>.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"huevopos/internal/dto"
	"huevopos/internal/model"
)

// recortar truncates free text to max runes, never splitting a multi-byte
// character ("Ñuñoa" and friends are legal location names).
func recortar(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func etiquetaTipo(tipo string) string {
	switch tipo {
	case model.TipoMedioCarton:
		return "Medios Cartones"
	case model.TipoCaja:
		return "Cajas"
	default:
		return "Cartones"
	}
}

// GenerateReportePDF renders the session summary document.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateReportePDF(reporte *dto.ReporteResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("reporte_venta_%s.pdf", reporte.VentaID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; free text (names, locations, descriptions)
	// must go through the translator or accented characters render garbled
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr(reporte.Nombre), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Venta %s — creada el %s", reporte.VentaID, reporte.CreatedAt.Format("02/01/2006")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Transacciones ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Transacciones", "", 1, "L", false, 0, "")

	colHora := contentW * 0.12
	colTipo := contentW * 0.20
	colCant := contentW * 0.08
	colPrecio := contentW * 0.13
	colTotal := contentW * 0.13
	colCambio := contentW * 0.13
	colUbic := contentW * 0.21

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colHora, 6, "Hora", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colTipo, 6, "Tipo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colCant, 6, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colPrecio, 6, "P. Unit.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 6, "Total", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colCambio, 6, "Cambio", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colUbic, 6, "Ubicacion", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	if len(reporte.Transacciones) == 0 {
		pdf.CellFormat(contentW, 6, "No hay transacciones registradas", "", 1, "L", false, 0, "")
	}
	for _, t := range reporte.Transacciones {
		ubicacion := recortar(t.Ubicacion, 24)
		pdf.CellFormat(colHora, 5, t.Timestamp.Format("15:04:05"), "", 0, "L", false, 0, "")
		pdf.CellFormat(colTipo, 5, etiquetaTipo(t.Tipo), "", 0, "L", false, 0, "")
		pdf.CellFormat(colCant, 5, fmt.Sprintf("x%d", t.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(colPrecio, 5, "$"+t.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 5, "$"+t.Total.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colCambio, 5, "$"+t.Cambio.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colUbic, 5, tr(ubicacion), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Gastos ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Gastos", "", 1, "L", false, 0, "")

	colGHora := contentW * 0.15
	colGDesc := contentW * 0.60
	colGMonto := contentW * 0.25

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colGHora, 6, "Hora", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colGDesc, 6, "Descripcion", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colGMonto, 6, "Monto", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	if len(reporte.Gastos) == 0 {
		pdf.CellFormat(contentW, 6, "No hay gastos registrados", "", 1, "L", false, 0, "")
	}
	for _, g := range reporte.Gastos {
		descripcion := recortar(g.Descripcion, 60)
		pdf.CellFormat(colGHora, 5, g.Timestamp.Format("15:04:05"), "", 0, "L", false, 0, "")
		pdf.CellFormat(colGDesc, 5, tr(descripcion), "", 0, "L", false, 0, "")
		pdf.CellFormat(colGMonto, 5, "$"+g.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Totales ───────────────────────────────────────────────────────────────
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW*0.75, 6, "Total Ventas:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.25, 6, "$"+reporte.TotalVentas.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW*0.75, 6, "Total Gastos:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.25, 6, "-$"+reporte.TotalGastos.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW*0.75, 8, "FONDOS NETOS:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.25, 8, "$"+reporte.FondosNetos.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
