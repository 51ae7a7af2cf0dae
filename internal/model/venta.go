package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de venta. El precio unitario se deriva del precio del cartón:
// cartón = p, medio cartón = p/2, caja (12 cartones) = p*12.
const (
	TipoCarton      = "carton"
	TipoMedioCarton = "half_carton"
	TipoCaja        = "box"
)

// Denominaciones de billetes aceptadas.
var Billetes = []int{1, 5, 10, 20, 50, 100}

// Descripciones de gasto sugeridas. Free text is also accepted — the list is
// a suggestion vocabulary, not a restriction.
var TiposGasto = []string{"Gasolina", "Comida", "Transporte", "Mantenimiento", "Otro"}

// PrecioPorDefecto is the carton price on first run.
var PrecioPorDefecto = decimal.NewFromInt(4)

// Venta is one sales session: a named grouping of transactions and expenses.
// Sessions are never deleted. Ledger mutations always produce a NEW Venta
// value (replace-on-write) so a failed persist never corrupts loaded state.
// JSON field names match the records written by the mobile app (sale_<id>).
type Venta struct {
	ID            string        `json:"id"` // decimal string, creation-ordered
	Nombre        string        `json:"name"`
	Transacciones []Transaccion `json:"transactions"`
	Gastos        []Gasto       `json:"expenses"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Transaccion is an immutable entry in the sales ledger.
// Transactions are NEVER modified or deleted — corrections are modeled as
// new compensating transactions.
type Transaccion struct {
	ID       string `json:"id"` // time-derived, unique within the session
	Tipo     string `json:"type"`
	Cantidad int    `json:"quantity"`
	// PrecioUnitario is snapshotted at creation time; later price changes
	// never alter past transactions.
	PrecioUnitario decimal.Decimal `json:"unitPrice"`
	Total          decimal.Decimal `json:"total"`
	// DineroRecibido maps bill denomination ("20") to count.
	DineroRecibido map[string]int  `json:"receivedMoney"`
	TotalRecibido  decimal.Decimal `json:"totalReceived"`
	Cambio         decimal.Decimal `json:"change"` // never negative once persisted
	Ubicacion      string          `json:"location"`
	Timestamp      time.Time       `json:"timestamp"`
}

// Gasto is an immutable entry in the expense ledger.
type Gasto struct {
	ID          string          `json:"id"`
	Monto       decimal.Decimal `json:"amount"`
	Descripcion string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
}

// ConTransaccion returns a copy of the session with t appended to the sales
// ledger. The receiver is not mutated.
func (v Venta) ConTransaccion(t Transaccion) Venta {
	out := v
	out.Transacciones = make([]Transaccion, len(v.Transacciones), len(v.Transacciones)+1)
	copy(out.Transacciones, v.Transacciones)
	out.Transacciones = append(out.Transacciones, t)
	return out
}

// ConGasto returns a copy of the session with g appended to the expense ledger.
func (v Venta) ConGasto(g Gasto) Venta {
	out := v
	out.Gastos = make([]Gasto, len(v.Gastos), len(v.Gastos)+1)
	copy(out.Gastos, v.Gastos)
	out.Gastos = append(out.Gastos, g)
	return out
}
