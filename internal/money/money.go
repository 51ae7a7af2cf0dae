// Package money holds the pure pricing and cash arithmetic rules.
// No state, no side effects — inputs are validated upstream.
package money

import (
	"strconv"

	"github.com/shopspring/decimal"

	"huevopos/internal/model"
)

var (
	dos  = decimal.NewFromInt(2)
	doce = decimal.NewFromInt(12)
)

// PrecioUnitario returns the unit price for a sale tier given the current
// carton price: cartón = p, medio cartón = p/2, caja = p*12.
func PrecioUnitario(tipo string, precioCarton decimal.Decimal) decimal.Decimal {
	switch tipo {
	case model.TipoMedioCarton:
		return precioCarton.Div(dos)
	case model.TipoCaja:
		return precioCarton.Mul(doce)
	default: // model.TipoCarton
		return precioCarton
	}
}

// TotalRecibido sums denomination × count over the received-money mapping.
// Keys are bill denominations as decimal strings ("20"); unparseable keys
// contribute nothing (the service rejects them before calling in).
func TotalRecibido(dineroRecibido map[string]int) decimal.Decimal {
	total := decimal.Zero
	for billete, cantidad := range dineroRecibido {
		valor, err := strconv.Atoi(billete)
		if err != nil || valor <= 0 || cantidad <= 0 {
			continue
		}
		total = total.Add(decimal.NewFromInt(int64(valor * cantidad)))
	}
	return total
}

// Cambio returns recibido − total. Negative means the tendered cash is
// insufficient; callers must reject the transaction in that case.
func Cambio(recibido, total decimal.Decimal) decimal.Decimal {
	return recibido.Sub(total)
}

// BilleteValido reports whether a denomination belongs to the fixed bill list.
func BilleteValido(billete string) bool {
	valor, err := strconv.Atoi(billete)
	if err != nil {
		return false
	}
	for _, b := range model.Billetes {
		if b == valor {
			return true
		}
	}
	return false
}
