package repository

import (
	"errors"
	"fmt"

	mysqlerr "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

const mysqlDuplicateEntry = 1062

// translate maps driver and gorm errors onto the repository sentinels.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", what, ErrDuplicate)
	}
	var myErr *mysqlerr.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return fmt.Errorf("%s: %w: %s", what, ErrDuplicate, myErr.Message)
	}
	return fmt.Errorf("%s: %w", what, err)
}
