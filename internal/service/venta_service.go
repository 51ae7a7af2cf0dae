package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"huevopos/internal/dto"
	"huevopos/internal/model"
	"huevopos/internal/money"
	"huevopos/internal/repository"
)

// VentaService is the session registry plus the per-session transaction and
// expense ledgers. Every mutation follows the same shape: load the session,
// validate, build a NEW session value with the appended entry, persist it,
// and only then let the new value become observable. A failed persist leaves
// no trace in memory, so state visible after restart always matches state
// visible before.
type VentaService interface {
	// Bootstrap creates session "1" ("Venta #01") when the store is empty
	// and points the current selection at the highest existing id.
	Bootstrap(ctx context.Context) error

	Crear(ctx context.Context, nombre string) (*model.Venta, error)
	Obtener(ctx context.Context, id string) (*model.Venta, error)
	Listar(ctx context.Context) ([]model.Venta, error)
	Actual(ctx context.Context) (*model.Venta, error)
	Seleccionar(ctx context.Context, id string) error

	RegistrarTransaccion(ctx context.Context, ventaID string, req dto.RegistrarTransaccionRequest) (*model.Venta, error)
	RegistrarGasto(ctx context.Context, ventaID string, monto decimal.Decimal, descripcion string) (*model.Venta, error)

	Balance(ctx context.Context, ventaID string) (*dto.BalanceResponse, error)
	Reporte(ctx context.Context, ventaID string) (*dto.ReporteResponse, error)
}

type ventaService struct {
	repo        repository.VentaRepository
	precios     repository.PrecioRepository
	ubicaciones UbicacionService

	// candados serializes read-modify-write per session id. The UI only
	// submits one mutation at a time, but the service stays correct if a
	// second actor ever appears.
	candados sync.Map // map[string]*sync.Mutex

	mu       sync.Mutex
	actualID string
	// crearMu serializes id allocation across concurrent Crear calls.
	crearMu sync.Mutex
}

func NewVentaService(
	repo repository.VentaRepository,
	precios repository.PrecioRepository,
	ubicaciones UbicacionService,
) VentaService {
	return &ventaService{repo: repo, precios: precios, ubicaciones: ubicaciones}
}

func (s *ventaService) candado(ventaID string) *sync.Mutex {
	m, _ := s.candados.LoadOrStore(ventaID, &sync.Mutex{})
	return m.(*sync.Mutex)
}

// ── Registro de sesiones ─────────────────────────────────────────────────────

func (s *ventaService) Bootstrap(ctx context.Context) error {
	ventas, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}

	if len(ventas) == 0 {
		primera := model.Venta{
			ID:            "1",
			Nombre:        "Venta #01",
			Transacciones: []model.Transaccion{},
			Gastos:        []model.Gasto{},
			CreatedAt:     time.Now().UTC(),
		}
		if err := s.repo.Save(ctx, &primera); err != nil {
			return err
		}
		s.seleccionar(primera.ID)
		return nil
	}

	// Default selection is the most recent session, not the first.
	s.seleccionar(ventas[len(ventas)-1].ID)
	return nil
}

func (s *ventaService) Crear(ctx context.Context, nombre string) (*model.Venta, error) {
	s.crearMu.Lock()
	defer s.crearMu.Unlock()

	ventas, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	max := 0
	for _, v := range ventas {
		if n, err := strconv.Atoi(v.ID); err == nil && n > max {
			max = n
		}
	}
	id := strconv.Itoa(max + 1)

	if nombre == "" {
		nombre = fmt.Sprintf("Venta #%02d", max+1)
	}

	nueva := model.Venta{
		ID:            id,
		Nombre:        nombre,
		Transacciones: []model.Transaccion{},
		Gastos:        []model.Gasto{},
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Save(ctx, &nueva); err != nil {
		return nil, err
	}

	// A freshly created session becomes the selected one.
	s.seleccionar(id)
	return &nueva, nil
}

func (s *ventaService) Obtener(ctx context.Context, id string) (*model.Venta, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ventaService) Listar(ctx context.Context) ([]model.Venta, error) {
	return s.repo.ListAll(ctx)
}

func (s *ventaService) Actual(ctx context.Context) (*model.Venta, error) {
	s.mu.Lock()
	id := s.actualID
	s.mu.Unlock()
	if id == "" {
		if err := s.Bootstrap(ctx); err != nil {
			return nil, err
		}
		s.mu.Lock()
		id = s.actualID
		s.mu.Unlock()
	}
	return s.repo.FindByID(ctx, id)
}

func (s *ventaService) Seleccionar(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	s.seleccionar(id)
	return nil
}

func (s *ventaService) seleccionar(id string) {
	s.mu.Lock()
	s.actualID = id
	s.mu.Unlock()
}

// ── Libro de transacciones ───────────────────────────────────────────────────

func (s *ventaService) RegistrarTransaccion(ctx context.Context, ventaID string, req dto.RegistrarTransaccionRequest) (*model.Venta, error) {
	if req.Cantidad <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", ErrTransaccionInvalida)
	}
	switch req.Tipo {
	case model.TipoCarton, model.TipoMedioCarton, model.TipoCaja:
	default:
		return nil, fmt.Errorf("%w: tipo de venta desconocido %q", ErrTransaccionInvalida, req.Tipo)
	}
	for billete, cantidad := range req.DineroRecibido {
		if !money.BilleteValido(billete) {
			return nil, fmt.Errorf("%w: denominacion desconocida %q", ErrTransaccionInvalida, billete)
		}
		if cantidad < 0 {
			return nil, fmt.Errorf("%w: cantidad de billetes negativa", ErrTransaccionInvalida)
		}
	}

	mu := s.candado(ventaID)
	mu.Lock()
	defer mu.Unlock()

	venta, err := s.repo.FindByID(ctx, ventaID)
	if err != nil {
		return nil, err
	}

	precioCarton, err := s.precios.Load(ctx)
	if err != nil {
		return nil, err
	}
	precioUnitario := money.PrecioUnitario(req.Tipo, precioCarton)
	total := precioUnitario.Mul(decimal.NewFromInt(int64(req.Cantidad)))
	recibido := money.TotalRecibido(req.DineroRecibido)
	cambio := money.Cambio(recibido, total)

	// Insufficient cash is rejected up front — never clamped, never appended.
	if cambio.IsNegative() {
		return nil, fmt.Errorf("%w: el monto recibido es menor que el total de la venta", ErrTransaccionInvalida)
	}

	ubicacion := req.Ubicacion
	if ubicacion == "" {
		if ubicacion, err = s.ubicaciones.Actual(ctx); err != nil {
			return nil, err
		}
	} else {
		registradas, err := s.ubicaciones.Listar(ctx)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(registradas, ubicacion) {
			return nil, fmt.Errorf("%w: %q", ErrUbicacionNoEncontrada, ubicacion)
		}
	}

	t := model.Transaccion{
		ID:             nuevoIDEntrada(idsTransacciones(venta)),
		Tipo:           req.Tipo,
		Cantidad:       req.Cantidad,
		PrecioUnitario: precioUnitario,
		Total:          total,
		DineroRecibido: req.DineroRecibido,
		TotalRecibido:  recibido,
		Cambio:         cambio,
		Ubicacion:      ubicacion,
		Timestamp:      time.Now().UTC(),
	}

	nueva := venta.ConTransaccion(t)
	if err := s.repo.Save(ctx, &nueva); err != nil {
		return nil, err
	}
	return &nueva, nil
}

// ── Libro de gastos ──────────────────────────────────────────────────────────

func (s *ventaService) RegistrarGasto(ctx context.Context, ventaID string, monto decimal.Decimal, descripcion string) (*model.Venta, error) {
	if !monto.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a cero", ErrGastoInvalido)
	}

	mu := s.candado(ventaID)
	mu.Lock()
	defer mu.Unlock()

	venta, err := s.repo.FindByID(ctx, ventaID)
	if err != nil {
		return nil, err
	}

	g := model.Gasto{
		ID:          nuevoIDEntrada(idsGastos(venta)),
		Monto:       monto,
		Descripcion: descripcion,
		Timestamp:   time.Now().UTC(),
	}

	nueva := venta.ConGasto(g)
	if err := s.repo.Save(ctx, &nueva); err != nil {
		return nil, err
	}
	return &nueva, nil
}

// ── Balance y reporte ────────────────────────────────────────────────────────

func (s *ventaService) Balance(ctx context.Context, ventaID string) (*dto.BalanceResponse, error) {
	venta, err := s.repo.FindByID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		VentaID:     venta.ID,
		TotalVentas: venta.TotalVentas(),
		TotalGastos: venta.TotalGastos(),
		FondosNetos: venta.FondosNetos(),
	}, nil
}

func (s *ventaService) Reporte(ctx context.Context, ventaID string) (*dto.ReporteResponse, error) {
	venta, err := s.repo.FindByID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	return &dto.ReporteResponse{
		VentaID:       venta.ID,
		Nombre:        venta.Nombre,
		CreatedAt:     venta.CreatedAt,
		Transacciones: venta.TransaccionesOrdenadas(),
		Gastos:        venta.Gastos,
		TotalVentas:   venta.TotalVentas(),
		TotalGastos:   venta.TotalGastos(),
		FondosNetos:   venta.FondosNetos(),
	}, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func idsTransacciones(v *model.Venta) map[string]bool {
	ids := make(map[string]bool, len(v.Transacciones))
	for _, t := range v.Transacciones {
		ids[t.ID] = true
	}
	return ids
}

func idsGastos(v *model.Venta) map[string]bool {
	ids := make(map[string]bool, len(v.Gastos))
	for _, g := range v.Gastos {
		ids[g.ID] = true
	}
	return ids
}

// nuevoIDEntrada derives a millisecond-timestamp id, bumped forward until it
// is unique within the ledger (fast consecutive appends land on the same ms).
func nuevoIDEntrada(existentes map[string]bool) string {
	ms := time.Now().UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if !existentes[id] {
			return id
		}
		ms++
	}
}
