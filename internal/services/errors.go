package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error classes. Every error a service returns on purpose wraps exactly one of
// these, so transports can map them without knowing the individual sentinels.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// lookupError converts a repository lookup failure. A missing row becomes
// notFound annotated with key; anything else is reported as a storage failure.
func lookupError(err, notFound error, key string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", notFound, key)
	}
	return fmt.Errorf("failed to load %s: %w", key, err)
}

// writeError converts a repository write failure. A unique index violation
// becomes conflict.
func writeError(err, conflict error, action string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
