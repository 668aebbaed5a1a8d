package repository

import (
	"errors" // Error inspection

	"gorm.io/gorm" // GORM ORM library
)

var (
	// ErrNotFound is returned when no record matches the requested id or key
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects a write
	ErrDuplicate = errors.New("duplicate key")
)

// translate maps GORM errors onto the repository sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
