package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqlerr "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: db, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return NewGormStore(gdb), mock
}

func TestGetHotelNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT \\* FROM `hotels`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := store.GetHotel(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLockAgencyRollsBackOnError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `agencies` .* FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "credit_limit", "current_balance"}).
			AddRow(7, "Zagros Travel", 10_000_000, 9_500_000))
	mock.ExpectRollback()

	over := errors.New("over limit")
	err := store.WithinTransaction(context.Background(), func(tx Store) error {
		agency, err := tx.LockAgency(context.Background(), 7)
		if err != nil {
			return err
		}
		if agency.CurrentBalance+1_000_000 > agency.CreditLimit {
			return over
		}
		return nil
	})
	if !errors.Is(err, over) {
		t.Fatalf("expected the callback error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTranslate(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"record not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, ErrDuplicate},
		{"mysql duplicate entry", &mysqlerr.MySQLError{Number: 1062, Message: "Duplicate entry 'BK1'"}, ErrDuplicate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := translate(tc.err, "op"); !errors.Is(got, tc.want) {
				t.Fatalf("translate(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}

	if translate(nil, "op") != nil {
		t.Fatalf("nil must stay nil")
	}
	other := &mysqlerr.MySQLError{Number: 1213, Message: "Deadlock found"}
	if got := translate(other, "op"); errors.Is(got, ErrDuplicate) || !errors.As(got, new(*mysqlerr.MySQLError)) {
		t.Fatalf("unexpected translation of a deadlock: %v", got)
	}
}
