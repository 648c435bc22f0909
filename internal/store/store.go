// Package store persists users and voyages in postgres through gorm.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"optifuel/api/internal/model"
)

var (
	// ErrNotFound is returned when no row matches, including rows owned by someone else
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects an insert
	ErrDuplicate = errors.New("duplicate record")
)

// Open connects to postgres. Driver errors are translated so that unique
// violations surface as gorm.ErrDuplicatedKey.
func Open(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// Ping checks the underlying connection
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// VoyageStore reads and writes voyages. Every read is scoped to an owner.
type VoyageStore struct {
	db *gorm.DB
}

// NewVoyageStore creates a voyage store
func NewVoyageStore(db *gorm.DB) *VoyageStore {
	return &VoyageStore{db: db}
}

// Create inserts v and fills in its id and creation time
func (s *VoyageStore) Create(ctx context.Context, v *model.Voyage) error {
	return translate(s.db.WithContext(ctx).Create(v).Error)
}

// ListByOwner returns every voyage of ownerID, newest first
func (s *VoyageStore) ListByOwner(ctx context.Context, ownerID uint) ([]model.Voyage, error) {
	var voyages []model.Voyage
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Find(&voyages).Error
	if err != nil {
		return nil, translate(err)
	}
	return voyages, nil
}

// Get returns voyage id if ownerID owns it
func (s *VoyageStore) Get(ctx context.Context, ownerID, id uint) (*model.Voyage, error) {
	var v model.Voyage
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&v).Error
	if err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

// UpdateActual sets the reported consumption of voyage id in a single
// statement and returns the updated row.
func (s *VoyageStore) UpdateActual(ctx context.Context, ownerID, id uint, actual float64) (*model.Voyage, error) {
	var v model.Voyage
	res := s.db.WithContext(ctx).
		Model(&v).
		Clauses(clause.Returning{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("actual_fuel_consumption", actual)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &v, nil
}

// UserStore reads and writes user accounts
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a user store
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts u. A taken email yields ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, u *model.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

// FindByEmail looks a user up by email
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// FindByID looks a user up by id
func (s *UserStore) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}
