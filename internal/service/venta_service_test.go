package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huevopos/internal/dto"
	"huevopos/internal/model"
	"huevopos/internal/repository"
	"huevopos/internal/store"
)

// newVentaServiceParaTest wires the full service stack over the in-memory KV.
func newVentaServiceParaTest(t *testing.T) (VentaService, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	ubicaciones := NewUbicacionService(repository.NewUbicacionRepository(mem))
	svc := NewVentaService(
		repository.NewVentaRepository(mem),
		repository.NewPrecioRepository(mem),
		ubicaciones,
	)
	require.NoError(t, ubicaciones.Bootstrap(context.Background()))
	require.NoError(t, svc.Bootstrap(context.Background()))
	return svc, mem
}

func transaccionCarton(cantidad int, recibido map[string]int) dto.RegistrarTransaccionRequest {
	return dto.RegistrarTransaccionRequest{
		Tipo:           model.TipoCarton,
		Cantidad:       cantidad,
		DineroRecibido: recibido,
	}
}

func TestBootstrapCreaPrimeraVenta(t *testing.T) {
	svc, _ := newVentaServiceParaTest(t)

	actual, err := svc.Actual(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", actual.ID)
	assert.Equal(t, "Venta #01", actual.Nombre)
	assert.Empty(t, actual.Transacciones)
	assert.Empty(t, actual.Gastos)
}

func TestBootstrapSeleccionaLaMasReciente(t *testing.T) {
	svc, mem := newVentaServiceParaTest(t)
	ctx := context.Background()

	_, err := svc.Crear(ctx, "")
	require.NoError(t, err)
	_, err = svc.Crear(ctx, "Feria")
	require.NoError(t, err)

	// A fresh service over the same store lands on the highest id
	ubicaciones := NewUbicacionService(repository.NewUbicacionRepository(mem))
	otro := NewVentaService(
		repository.NewVentaRepository(mem),
		repository.NewPrecioRepository(mem),
		ubicaciones,
	)
	require.NoError(t, otro.Bootstrap(ctx))

	actual, err := otro.Actual(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3", actual.ID)
	assert.Equal(t, "Feria", actual.Nombre)
}

func TestCrearAsignaIDsSecuenciales(t *testing.T) {
	svc, _ := newVentaServiceParaTest(t)
	ctx := context.Background()

	segunda, err := svc.Crear(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2", segunda.ID)
	assert.Equal(t, "Venta #02", segunda.Nombre)

	tercera, err := svc.Crear(ctx, "Mercado")
	require.NoError(t, err)
	assert.Equal(t, "3", tercera.ID)
	assert.Equal(t, "Mercado", tercera.Nombre)

	// Creation moves the selection
	actual, err := svc.Actual(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3", actual.ID)
}

func TestListarOrdenadoPorID(t *testing.T) {
	svc, _ := newVentaServiceParaTest(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := svc.Crear(ctx, "")
		require.NoError(t, err)
	}

	ventas, err := svc.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, ventas, 11)
	// Numeric order, not lexicographic: 2 before 10
	assert.Equal(t, "1", ventas[0].ID)
	assert.Equal(t, "2", ventas[1].ID)
	assert.Equal(t, "10", ventas[9].ID)
	assert.Equal(t, "11", ventas[10].ID)
}

func TestSeleccionarVentaInexistente(t *testing.T) {
	svc, _ := newVentaServiceParaTest(t)

	err := svc.Seleccionar(context.Background(), "99")
	assert.ErrorIs(t, err, repository.ErrVentaNoEncontrada)
}

func TestRegistrarTransaccionCarton(t *testing.T) {
	svc, _ := newVentaServiceParaTest(t)
	ctx := context.Background()

	// 3 cartones al precio por defecto 4.00 → total 12; paga con $20
	venta, err := svc.RegistrarTransaccion(ctx, "1", transaccionCarton(3, map[string]int{"20": 1}))
	require.NoError(t, err)
	require.Len(t, venta.Transacciones, 1)

	tx := venta.Transacciones[0]
	assert.True(t, decimal.NewFromInt(4).Equal(tx.PrecioUnitario))
	assert.True(t, decimal.NewFromInt(12).Equal(tx.Total))
	assert.True(t, decimal.NewFromInt(20).Equal(tx.TotalRecibido))
	assert.True(t, decimal.NewFromInt(8).Equal(tx.Cambio))
	assert.Equal(t, repository.UbicacionPorDefecto, tx.Ubicacion)
	assert.NotEmpty(t, tx.ID)
}

func TestRegistrarTransaccionPrecioPorTipo(t *testing.T) {
	svc, mem := newVentaServiceParaTest(t)
	ctx := context.Background()

	precios := NewPrecioService(repository.NewPrecioRepository(mem))
	require.NoError(t, precios.Guardar(ctx, decimal.NewFromFloat(5.00)))

	venta, err := svc.RegistrarTransaccion(ctx, "1", dto.RegistrarTransaccionRequest{
		Tipo:           model.TipoMedioCarton,
		Cantidad:       2,
		DineroRecibido: map[string]int{"5": 1},
	})
	require.NoError(t, err)

	tx := venta.Transacciones[0]
	assert.True(t, decimal.NewFromFloat(2.50).Equal(tx.PrecioUnitario))
	assert.True(t, decimal.NewFromInt(5).Equal(tx.Total))
	assert.True(t, decimal.Zero.Equal(tx.Cambio))
}

func TestRegistrarTransaccionMontoInsuficiente(t *testing.T) {
	svc, _ := newVentaServiceParaTest(t)
	ctx := context.Background()

	// Una caja = 4.00 × 12 = 48; $40 no alcanza
	_, err := svc.RegistrarTransaccion(ctx, "1", dto.RegistrarTransaccionRequest{
		Tipo:           model.TipoCaja,
		Cantidad:       1,
		DineroRecibido: map[string]int{"20": 2},
	})
	assert.ErrorIs(t, err, ErrTransaccionInvalida)

	// Nothing was appended
	venta, err := svc.Obtener(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, venta.Transacciones)
}

func TestRegistrarTransaccionValidaciones(t *testing.T) {
	svc, _ := newVentaServiceParaTest(t)
	ctx := context.Background()

	_, err := svc.RegistrarTransaccion(ctx, "1", transaccionCarton(0, map[string]int{"20": 1}))
	assert.ErrorIs(t, err, ErrTransaccionInvalida)

	_, err = svc.RegistrarTransaccion(ctx, "1", dto.RegistrarTransaccionRequest{
		Tipo: "docena", Cantidad: 1, DineroRecibido: map[string]int{"20": 1},
	})
	assert.ErrorIs(t, err, ErrTransaccionInvalida)

	_, err = svc.RegistrarTransaccion(ctx, "1", transaccionCarton(1, map[string]int{"2": 3}))
	assert.ErrorIs(t, err, ErrTransaccionInvalida)

	_, err = svc.RegistrarTransaccion(ctx, "1", transaccionCarton(1, map[string]int{"20": -1}))
	assert.ErrorIs(t, err, ErrTransaccionInvalida)

	_, err = svc.RegistrarTransaccion(ctx, "99", transaccionCarton(1, map[string]int{"20": 1}))
	assert.ErrorIs(t, err, repository.ErrVentaNoEncontrada)
}

func TestRegistrarTransaccionUbicacionNoRegistrada(t *testing.T) {
	svc, mem := newVentaServiceParaTest(t)
	ctx := context.Background()

	req := transaccionCarton(1, map[string]int{"5": 1})
	req.Ubicacion = "Feria Fantasma"
	_, err := svc.RegistrarTransaccion(ctx, "1", req)
	assert.ErrorIs(t, err, ErrUbicacionNoEncontrada)

	// Nothing was appended
	venta, err := svc.Obtener(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, venta.Transacciones)

	// Once registered, the same name is accepted and recorded
	ubicaciones := NewUbicacionService(repository.NewUbicacionRepository(mem))
	_, err = ubicaciones.Agregar(ctx, "Feria Fantasma")
	require.NoError(t, err)

	venta, err = svc.RegistrarTransaccion(ctx, "1", req)
	require.NoError(t, err)
	require.Len(t, venta.Transacciones, 1)
	assert.Equal(t, "Feria Fantasma", venta.Transacciones[0].Ubicacion)
}

func TestRegistrarGasto(t *testing.T) {
	svc, _ := newVentaServiceParaTest(t)
	ctx := context.Background()

	venta, err := svc.RegistrarGasto(ctx, "1", decimal.NewFromFloat(15.50), "Gasolina")
	require.NoError(t, err)
	require.Len(t, venta.Gastos, 1)
	assert.Equal(t, "Gasolina", venta.Gastos[0].Descripcion)
	assert.True(t, decimal.NewFromFloat(15.50).Equal(venta.Gastos[0].Monto))
}

func TestRegistrarGastoMontoInvalido(t *testing.T) {
	svc, _ := newVentaServiceParaTest(t)
	ctx := context.Background()

	_, err := svc.RegistrarGasto(ctx, "1", decimal.Zero, "Comida")
	assert.ErrorIs(t, err, ErrGastoInvalido)

	_, err = svc.RegistrarGasto(ctx, "1", decimal.NewFromInt(-5), "Comida")
	assert.ErrorIs(t, err, ErrGastoInvalido)

	venta, err := svc.Obtener(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, venta.Gastos)
}

func TestBalanceConGastosMayoresQueVentas(t *testing.T) {
	svc, _ := newVentaServiceParaTest(t)
	ctx := context.Background()

	_, err := svc.RegistrarTransaccion(ctx, "1", transaccionCarton(3, map[string]int{"20": 1}))
	require.NoError(t, err)
	_, err = svc.RegistrarGasto(ctx, "1", decimal.NewFromFloat(15.50), "Gasolina")
	require.NoError(t, err)

	balance, err := svc.Balance(ctx, "1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(12).Equal(balance.TotalVentas))
	assert.True(t, decimal.NewFromFloat(15.50).Equal(balance.TotalGastos))
	assert.True(t, decimal.NewFromFloat(-3.50).Equal(balance.FondosNetos))
}

func TestReporteOrdenaMasRecientePrimero(t *testing.T) {
	svc, _ := newVentaServiceParaTest(t)
	ctx := context.Background()

	_, err := svc.RegistrarTransaccion(ctx, "1", transaccionCarton(1, map[string]int{"5": 1}))
	require.NoError(t, err)
	_, err = svc.RegistrarTransaccion(ctx, "1", transaccionCarton(2, map[string]int{"10": 1}))
	require.NoError(t, err)

	reporte, err := svc.Reporte(ctx, "1")
	require.NoError(t, err)
	require.Len(t, reporte.Transacciones, 2)
	assert.False(t, reporte.Transacciones[0].Timestamp.Before(reporte.Transacciones[1].Timestamp))
	assert.Equal(t, 2, reporte.Transacciones[0].Cantidad)
}

func TestPersistenciaFallidaNoDejaRastro(t *testing.T) {
	svc, mem := newVentaServiceParaTest(t)
	ctx := context.Background()

	_, err := svc.RegistrarTransaccion(ctx, "1", transaccionCarton(1, map[string]int{"5": 1}))
	require.NoError(t, err)

	mem.FailWrites = errors.New("disco lleno")

	_, err = svc.RegistrarTransaccion(ctx, "1", transaccionCarton(2, map[string]int{"10": 1}))
	require.Error(t, err)
	assert.True(t, store.IsStorageError(err))

	_, err = svc.Crear(ctx, "")
	require.Error(t, err)

	mem.FailWrites = nil

	// Visible state is exactly what was committed before the failure
	venta, err := svc.Obtener(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, venta.Transacciones, 1)

	ventas, err := svc.Listar(ctx)
	require.NoError(t, err)
	assert.Len(t, ventas, 1)
}
