package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Registro is the single-table schema backing the postgres driver: one row
// per logical key, value stored as the raw JSON record.
type Registro struct {
	Clave string `gorm:"primaryKey;column:clave"`
	Valor []byte `gorm:"column:valor;not null"`
}

func (Registro) TableName() string { return "registros" }

// gormKV implements KV on a GORM-managed Postgres table.
type gormKV struct {
	db *gorm.DB
}

// NewGorm wraps a GORM connection as a KV driver. The registros table must
// already exist (infra.NewDatabase migrates it).
func NewGorm(db *gorm.DB) KV {
	return &gormKV{db: db}
}

func (s *gormKV) Get(ctx context.Context, key string) ([]byte, error) {
	var r Registro
	err := s.db.WithContext(ctx).First(&r, "clave = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAbsent
	}
	if err != nil {
		return nil, &StorageError{Op: "get", Key: key, Err: err}
	}
	return r.Valor, nil
}

func (s *gormKV) Set(ctx context.Context, key string, value []byte) error {
	r := Registro{Clave: key, Valor: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clave"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor"}),
	}).Create(&r).Error
	if err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (s *gormKV) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).Model(&Registro{}).
		Where("clave LIKE ?", prefix+"%").
		Order("clave ASC").
		Pluck("clave", &keys).Error
	if err != nil {
		return nil, &StorageError{Op: "list", Key: prefix, Err: err}
	}
	return keys, nil
}

func (s *gormKV) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	if len(keys) == 0 {
		return map[string][]byte{}, nil
	}
	var rows []Registro
	err := s.db.WithContext(ctx).Where("clave IN ?", keys).Find(&rows).Error
	if err != nil {
		return nil, &StorageError{Op: "getmany", Key: keys[0], Err: err}
	}
	out := make(map[string][]byte, len(rows))
	for _, r := range rows {
		out[r.Clave] = r.Valor
	}
	return out, nil
}
