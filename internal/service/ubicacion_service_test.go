package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huevopos/internal/repository"
	"huevopos/internal/store"
)

func TestUbicacionesArrancanConBodega(t *testing.T) {
	mem := store.NewMemory()
	svc := NewUbicacionService(repository.NewUbicacionRepository(mem))
	ctx := context.Background()
	require.NoError(t, svc.Bootstrap(ctx))

	ubicaciones, err := svc.Listar(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bodega"}, ubicaciones)

	actual, err := svc.Actual(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bodega", actual)
}

func TestAgregarUbicacionDuplicadaEsNoOp(t *testing.T) {
	mem := store.NewMemory()
	svc := NewUbicacionService(repository.NewUbicacionRepository(mem))
	ctx := context.Background()
	require.NoError(t, svc.Bootstrap(ctx))

	ubicaciones, err := svc.Agregar(ctx, "Mercado Norte")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bodega", "Mercado Norte"}, ubicaciones)

	ubicaciones, err = svc.Agregar(ctx, "Bodega")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bodega", "Mercado Norte"}, ubicaciones)

	ubicaciones, err = svc.Agregar(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bodega", "Mercado Norte"}, ubicaciones)
}

func TestSeleccionarUbicacion(t *testing.T) {
	mem := store.NewMemory()
	svc := NewUbicacionService(repository.NewUbicacionRepository(mem))
	ctx := context.Background()
	require.NoError(t, svc.Bootstrap(ctx))

	_, err := svc.Agregar(ctx, "Mercado Norte")
	require.NoError(t, err)

	require.NoError(t, svc.Seleccionar(ctx, "Mercado Norte"))
	actual, err := svc.Actual(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mercado Norte", actual)

	err = svc.Seleccionar(ctx, "Playa")
	assert.ErrorIs(t, err, ErrUbicacionNoEncontrada)

	// Failed selection leaves the pointer untouched
	actual, err = svc.Actual(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mercado Norte", actual)
}

func TestPrecioPorDefectoYGuardado(t *testing.T) {
	mem := store.NewMemory()
	svc := NewPrecioService(repository.NewPrecioRepository(mem))
	ctx := context.Background()

	precio, err := svc.Obtener(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4).Equal(precio))

	require.NoError(t, svc.Guardar(ctx, decimal.NewFromFloat(4.75)))

	precio, err = svc.Obtener(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(4.75).Equal(precio))
}

func TestGuardarPrecioInvalido(t *testing.T) {
	mem := store.NewMemory()
	svc := NewPrecioService(repository.NewPrecioRepository(mem))
	ctx := context.Background()

	assert.ErrorIs(t, svc.Guardar(ctx, decimal.Zero), ErrPrecioInvalido)
	assert.ErrorIs(t, svc.Guardar(ctx, decimal.NewFromInt(-1)), ErrPrecioInvalido)

	// The stored default survives the rejected writes
	precio, err := svc.Obtener(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4).Equal(precio))
}
