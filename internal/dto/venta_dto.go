package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"huevopos/internal/model"
)

// JSON field names follow the persisted record format (camelCase) so the
// interactive front end reads API payloads and local records identically.

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearVentaRequest struct {
	// Nombre is optional; empty means "Venta #NN" derived from the new id.
	Nombre string `json:"name" validate:"omitempty,max=60"`
}

type SeleccionarVentaRequest struct {
	ID string `json:"id" validate:"required,numeric"`
}

type RegistrarTransaccionRequest struct {
	Tipo     string `json:"type"     validate:"required,oneof=carton half_carton box"`
	Cantidad int    `json:"quantity" validate:"required,gt=0"`
	// DineroRecibido maps bill denomination ("20") to count. Denominations
	// outside the fixed bill list are rejected by the service.
	DineroRecibido map[string]int `json:"receivedMoney" validate:"required"`
	// Ubicacion is optional; empty means the currently selected location.
	Ubicacion string `json:"location"`
}

type RegistrarGastoRequest struct {
	Monto decimal.Decimal `json:"amount" validate:"required,gt=0"`
	// Descripcion is free text; model.TiposGasto is only a suggestion list.
	Descripcion string `json:"description" validate:"max=120"`
}

type GuardarPrecioRequest struct {
	Precio decimal.Decimal `json:"price" validate:"required,gt=0"`
}

type AgregarUbicacionRequest struct {
	Nombre string `json:"name" validate:"required,max=60"`
}

type SeleccionarUbicacionRequest struct {
	Nombre string `json:"name" validate:"required"`
}

type ExportarReporteRequest struct {
	// Email is optional; when present the generated PDF is sent as an
	// attachment after rendering.
	Email string `json:"email" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BalanceResponse struct {
	VentaID     string          `json:"saleId"`
	TotalVentas decimal.Decimal `json:"totalSales"`
	TotalGastos decimal.Decimal `json:"totalExpenses"`
	FondosNetos decimal.Decimal `json:"netFunds"`
}

// ReporteResponse is the full data contract an external renderer needs to
// produce a human-readable session summary.
type ReporteResponse struct {
	VentaID       string              `json:"saleId"`
	Nombre        string              `json:"name"`
	CreatedAt     time.Time           `json:"createdAt"`
	Transacciones []model.Transaccion `json:"transactions"` // newest first
	Gastos        []model.Gasto       `json:"expenses"`
	TotalVentas   decimal.Decimal     `json:"totalSales"`
	TotalGastos   decimal.Decimal     `json:"totalExpenses"`
	FondosNetos   decimal.Decimal     `json:"netFunds"`
}

type UbicacionesResponse struct {
	Ubicaciones []string `json:"locations"`
	Actual      string   `json:"current"`
}

type PrecioResponse struct {
	Precio decimal.Decimal `json:"price"`
}

// CatalogoResponse exposes the fixed UI vocabularies so the front end does
// not hardcode them.
type CatalogoResponse struct {
	Billetes   []int    `json:"bills"`
	TiposVenta []string `json:"saleTypes"`
	TiposGasto []string `json:"expenseTypes"`
}

type ExportarReporteResponse struct {
	VentaID  string `json:"saleId"`
	Encolado bool   `json:"enqueued"`
	EmailTo  string `json:"emailTo,omitempty"`
}
