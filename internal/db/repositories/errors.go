package repositories

import (
	"errors"

	"github.com/go-pg/pg/v10"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

const uniqueViolationCode = "23505"

// wrapError maps driver errors onto the package sentinels.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pg.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr pg.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolationCode {
		return ErrAlreadyExists
	}

	return err
}
