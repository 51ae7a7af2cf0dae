package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Derived totals are ALWAYS recomputed from the ledgers — never cached,
// never persisted as separate fields — so they can never drift from their
// source entries.

// TotalVentas returns the sum of every transaction total in the session.
func (v Venta) TotalVentas() decimal.Decimal {
	total := decimal.Zero
	for _, t := range v.Transacciones {
		total = total.Add(t.Total)
	}
	return total
}

// TotalGastos returns the sum of every expense amount in the session.
func (v Venta) TotalGastos() decimal.Decimal {
	total := decimal.Zero
	for _, g := range v.Gastos {
		total = total.Add(g.Monto)
	}
	return total
}

// FondosNetos returns total sales minus total expenses. May be negative.
func (v Venta) FondosNetos() decimal.Decimal {
	return v.TotalVentas().Sub(v.TotalGastos())
}

// TransaccionesOrdenadas returns a newest-first copy of the sales ledger for
// display. Storage order (insertion order) is never touched.
func (v Venta) TransaccionesOrdenadas() []Transaccion {
	out := make([]Transaccion, len(v.Transacciones))
	copy(out, v.Transacciones)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}
