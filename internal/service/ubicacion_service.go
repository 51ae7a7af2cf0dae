package service

import (
	"context"
	"sync"

	"huevopos/internal/repository"
)

// UbicacionService manages the set of named sale locations plus the
// "current location" pointer attached to every new transaction. Names are
// unique (case-sensitive exact match) and never removed.
type UbicacionService interface {
	// Bootstrap loads the persisted set and points the current location at
	// the first entry. Called once at startup.
	Bootstrap(ctx context.Context) error
	Listar(ctx context.Context) ([]string, error)
	// Agregar appends a new location and persists the full set. Empty or
	// duplicate names are a no-op, matching the original behavior.
	Agregar(ctx context.Context, nombre string) ([]string, error)
	Actual(ctx context.Context) (string, error)
	Seleccionar(ctx context.Context, nombre string) error
}

type ubicacionService struct {
	repo repository.UbicacionRepository

	mu     sync.Mutex
	actual string
}

func NewUbicacionService(repo repository.UbicacionRepository) UbicacionService {
	return &ubicacionService{repo: repo}
}

func (s *ubicacionService) Bootstrap(ctx context.Context) error {
	ubicaciones, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.actual = ubicaciones[0]
	s.mu.Unlock()
	return nil
}

func (s *ubicacionService) Listar(ctx context.Context) ([]string, error) {
	return s.repo.Load(ctx)
}

func (s *ubicacionService) Agregar(ctx context.Context, nombre string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ubicaciones, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if nombre == "" {
		return ubicaciones, nil
	}
	for _, u := range ubicaciones {
		if u == nombre {
			return ubicaciones, nil
		}
	}
	nuevas := append(append([]string{}, ubicaciones...), nombre)
	// Persist first; the in-memory pointer is untouched on failure.
	if err := s.repo.Save(ctx, nuevas); err != nil {
		return nil, err
	}
	return nuevas, nil
}

func (s *ubicacionService) Actual(ctx context.Context) (string, error) {
	s.mu.Lock()
	actual := s.actual
	s.mu.Unlock()
	if actual != "" {
		return actual, nil
	}
	// Not bootstrapped yet — fall back to the first persisted location.
	ubicaciones, err := s.repo.Load(ctx)
	if err != nil {
		return "", err
	}
	return ubicaciones[0], nil
}

func (s *ubicacionService) Seleccionar(ctx context.Context, nombre string) error {
	ubicaciones, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	for _, u := range ubicaciones {
		if u == nombre {
			s.mu.Lock()
			s.actual = nombre
			s.mu.Unlock()
			return nil
		}
	}
	return ErrUbicacionNoEncontrada
}
