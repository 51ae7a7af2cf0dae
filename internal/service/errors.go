package service

import "errors"

// Domain error kinds. Handlers map these to HTTP statuses; everything else
// (notably *store.StorageError) is treated as a storage failure.
var (
	// ErrTransaccionInvalida: quantity ≤ 0, unknown denomination, or
	// tendered cash insufficient. Raised BEFORE any mutation.
	ErrTransaccionInvalida = errors.New("transaccion invalida")
	// ErrGastoInvalido: non-positive expense amount.
	ErrGastoInvalido = errors.New("gasto invalido")
	// ErrPrecioInvalido: non-positive carton price.
	ErrPrecioInvalido = errors.New("precio invalido")
	// ErrUbicacionNoEncontrada: selecting, or selling at, a location that was
	// never added.
	ErrUbicacionNoEncontrada = errors.New("ubicacion no encontrada")
)
