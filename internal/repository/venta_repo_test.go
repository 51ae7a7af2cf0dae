package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huevopos/internal/model"
	"huevopos/internal/store"
)

func TestVentaRepoRoundTrip(t *testing.T) {
	mem := store.NewMemory()
	repo := NewVentaRepository(mem)
	ctx := context.Background()

	venta := model.Venta{
		ID:     "1",
		Nombre: "Venta #01",
		Transacciones: []model.Transaccion{
			{
				ID:             "1757600000000",
				Tipo:           model.TipoCarton,
				Cantidad:       3,
				PrecioUnitario: decimal.NewFromInt(4),
				Total:          decimal.NewFromInt(12),
				DineroRecibido: map[string]int{"20": 1},
				TotalRecibido:  decimal.NewFromInt(20),
				Cambio:         decimal.NewFromInt(8),
				Ubicacion:      "Bodega",
				Timestamp:      time.Now().UTC().Truncate(time.Millisecond),
			},
		},
		Gastos:    []model.Gasto{},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, repo.Save(ctx, &venta))

	// Stored under the sale_<id> key
	_, err := mem.Get(ctx, "sale_1")
	require.NoError(t, err)

	leida, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, venta.Nombre, leida.Nombre)
	require.Len(t, leida.Transacciones, 1)
	assert.True(t, venta.Transacciones[0].Total.Equal(leida.Transacciones[0].Total))
	assert.Equal(t, venta.Transacciones[0].DineroRecibido, leida.Transacciones[0].DineroRecibido)
}

func TestVentaRepoNoEncontrada(t *testing.T) {
	repo := NewVentaRepository(store.NewMemory())

	_, err := repo.FindByID(context.Background(), "7")
	assert.ErrorIs(t, err, ErrVentaNoEncontrada)
}

func TestVentaRepoListAllOrdenNumerico(t *testing.T) {
	mem := store.NewMemory()
	repo := NewVentaRepository(mem)
	ctx := context.Background()

	for _, id := range []string{"10", "2", "1"} {
		require.NoError(t, repo.Save(ctx, &model.Venta{ID: id, Nombre: "Venta #" + id}))
	}

	ventas, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, ventas, 3)
	assert.Equal(t, "1", ventas[0].ID)
	assert.Equal(t, "2", ventas[1].ID)
	assert.Equal(t, "10", ventas[2].ID)
}

func TestPrecioRepoFormatoPlano(t *testing.T) {
	mem := store.NewMemory()
	repo := NewPrecioRepository(mem)
	ctx := context.Background()

	precio, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, model.PrecioPorDefecto.Equal(precio))

	require.NoError(t, repo.Save(ctx, decimal.NewFromFloat(4.5)))

	// Stored as a bare decimal string, not JSON
	raw, err := mem.Get(ctx, "price")
	require.NoError(t, err)
	assert.Equal(t, "4.5", string(raw))
}

func TestUbicacionRepoDefecto(t *testing.T) {
	mem := store.NewMemory()
	repo := NewUbicacionRepository(mem)
	ctx := context.Background()

	ubicaciones, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{UbicacionPorDefecto}, ubicaciones)

	require.NoError(t, repo.Save(ctx, []string{"Bodega", "Mercado"}))

	ubicaciones, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bodega", "Mercado"}, ubicaciones)
}
