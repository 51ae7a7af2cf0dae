package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"huevopos/internal/repository"
)

// PrecioService owns the single process-wide carton price. The price is
// snapshotted into each transaction at creation time — saving a new price
// never alters past ledger entries.
type PrecioService interface {
	Obtener(ctx context.Context) (decimal.Decimal, error)
	Guardar(ctx context.Context, precio decimal.Decimal) error
}

type precioService struct {
	repo repository.PrecioRepository
}

func NewPrecioService(repo repository.PrecioRepository) PrecioService {
	return &precioService{repo: repo}
}

func (s *precioService) Obtener(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.Load(ctx)
}

func (s *precioService) Guardar(ctx context.Context, precio decimal.Decimal) error {
	if !precio.IsPositive() {
		return fmt.Errorf("%w: debe ser mayor a cero", ErrPrecioInvalido)
	}
	return s.repo.Save(ctx, precio)
}
