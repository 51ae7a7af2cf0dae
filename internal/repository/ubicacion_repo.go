package repository

import (
	"context"
	"encoding/json"
	"errors"

	"huevopos/internal/store"
)

// UbicacionPorDefecto exists on first run before any location is saved.
const UbicacionPorDefecto = "Bodega"

type UbicacionRepository interface {
	// Load returns the location list in insertion order, or the built-in
	// default when nothing was ever saved.
	Load(ctx context.Context) ([]string, error)
	// Save persists the full set wholesale.
	Save(ctx context.Context, ubicaciones []string) error
}

type ubicacionRepo struct{ kv store.KV }

func NewUbicacionRepository(kv store.KV) UbicacionRepository { return &ubicacionRepo{kv: kv} }

func (r *ubicacionRepo) Load(ctx context.Context) ([]string, error) {
	raw, err := r.kv.Get(ctx, ClaveUbicacion)
	if errors.Is(err, store.ErrAbsent) {
		return []string{UbicacionPorDefecto}, nil
	}
	if err != nil {
		return nil, err
	}
	var ubicaciones []string
	if err := json.Unmarshal(raw, &ubicaciones); err != nil {
		return nil, &store.StorageError{Op: "get", Key: ClaveUbicacion, Err: err}
	}
	if len(ubicaciones) == 0 {
		return []string{UbicacionPorDefecto}, nil
	}
	return ubicaciones, nil
}

func (r *ubicacionRepo) Save(ctx context.Context, ubicaciones []string) error {
	raw, err := json.Marshal(ubicaciones)
	if err != nil {
		return &store.StorageError{Op: "set", Key: ClaveUbicacion, Err: err}
	}
	return r.kv.Set(ctx, ClaveUbicacion, raw)
}
