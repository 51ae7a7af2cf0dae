package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"huevopos/internal/model"
	"huevopos/internal/store"
)

type PrecioRepository interface {
	// Load returns the persisted carton price, or the 4.00 default when
	// nothing was ever saved.
	Load(ctx context.Context) (decimal.Decimal, error)
	Save(ctx context.Context, precio decimal.Decimal) error
}

type precioRepo struct{ kv store.KV }

func NewPrecioRepository(kv store.KV) PrecioRepository { return &precioRepo{kv: kv} }

func (r *precioRepo) Load(ctx context.Context) (decimal.Decimal, error) {
	raw, err := r.kv.Get(ctx, ClavePrecio)
	if errors.Is(err, store.ErrAbsent) {
		return model.PrecioPorDefecto, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	// Stored as a bare decimal string ("4.5"), same as the original records.
	precio, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, &store.StorageError{Op: "get", Key: ClavePrecio, Err: err}
	}
	return precio, nil
}

func (r *precioRepo) Save(ctx context.Context, precio decimal.Decimal) error {
	return r.kv.Set(ctx, ClavePrecio, []byte(precio.String()))
}
