// Package memory is an in-process implementation of repository.Store. It
// backs the demo mode of the server and the service tests.
//
// Transactions are serialized by a single mutex; a snapshot of the dataset is
// taken when one begins and restored if it fails. Writes made outside a
// transaction are applied as their own transaction.
package memory

import (
	"context"
	"errors"
	"sync"

	"hotel-reservation/repository"
)

var ErrNoTransaction = errors.New("memory: lock requested outside a transaction")

type Store struct {
	view

	txMu sync.Mutex
	mu   sync.RWMutex
	data *dataset
	seq  uint
}

var _ repository.Store = (*Store)(nil)

func New() *Store {
	s := &Store{data: newDataset()}
	s.view = view{s: s}
	return s
}

// view is the Store seen either from outside or from inside a transaction.
type view struct {
	s    *Store
	inTx bool
}

func (v *view) WithinTransaction(ctx context.Context, fn func(tx repository.Store) error) error {
	if v.inTx {
		return fn(v)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s := v.s
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(&view{s: s, inTx: true}); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (v *view) read(fn func(d *dataset) error) error {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return fn(v.s.data)
}

func (v *view) lock(fn func(d *dataset) error) error {
	if !v.inTx {
		return ErrNoTransaction
	}
	return v.read(fn)
}

func (v *view) write(fn func(d *dataset) error) error {
	if !v.inTx {
		v.s.txMu.Lock()
		defer v.s.txMu.Unlock()
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.data)
}

// nextID must be called with mu held for writing.
func (s *Store) nextID() uint {
	s.seq++
	return s.seq
}
