package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"

	"huevopos/internal/model"
	"huevopos/internal/store"
)

// Key layout shared with the original mobile records.
const (
	PrefijoVenta   = "sale_"
	ClavePrecio    = "price"
	ClaveUbicacion = "locations"
)

// ErrVentaNoEncontrada is returned when a session id was never persisted.
var ErrVentaNoEncontrada = errors.New("venta no encontrada")

type VentaRepository interface {
	FindByID(ctx context.Context, id string) (*model.Venta, error)
	// ListAll returns every session ordered by numeric id ascending,
	// regardless of key enumeration order.
	ListAll(ctx context.Context) ([]model.Venta, error)
	// Save persists the full session record wholesale — the sole mutation
	// path. It must complete before callers commit the value anywhere.
	Save(ctx context.Context, v *model.Venta) error
}

type ventaRepo struct{ kv store.KV }

func NewVentaRepository(kv store.KV) VentaRepository { return &ventaRepo{kv: kv} }

func claveVenta(id string) string { return PrefijoVenta + id }

func (r *ventaRepo) FindByID(ctx context.Context, id string) (*model.Venta, error) {
	raw, err := r.kv.Get(ctx, claveVenta(id))
	if errors.Is(err, store.ErrAbsent) {
		return nil, ErrVentaNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	var v model.Venta
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &store.StorageError{Op: "get", Key: claveVenta(id), Err: err}
	}
	return &v, nil
}

func (r *ventaRepo) ListAll(ctx context.Context) ([]model.Venta, error) {
	keys, err := r.kv.ListKeys(ctx, PrefijoVenta)
	if err != nil {
		return nil, err
	}
	records, err := r.kv.GetMany(ctx, keys)
	if err != nil {
		return nil, err
	}
	ventas := make([]model.Venta, 0, len(records))
	for key, raw := range records {
		var v model.Venta
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, &store.StorageError{Op: "getmany", Key: key, Err: err}
		}
		ventas = append(ventas, v)
	}
	sort.Slice(ventas, func(i, j int) bool {
		a, _ := strconv.Atoi(ventas[i].ID)
		b, _ := strconv.Atoi(ventas[j].ID)
		return a < b
	})
	return ventas, nil
}

func (r *ventaRepo) Save(ctx context.Context, v *model.Venta) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return &store.StorageError{Op: "set", Key: claveVenta(v.ID), Err: err}
	}
	return r.kv.Set(ctx, claveVenta(v.ID), raw)
}
