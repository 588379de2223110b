package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/doctrina/core"
	"github.com/poiesic/doctrina/storage"
)

// TraceRepository implements storage.TraceRepository for BadgerDB.
type TraceRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.TraceRepository = (*TraceRepository)(nil)

// NewTraceRepository creates a new TraceRepository. The caller keeps
// ownership of the backend.
func NewTraceRepository(backend *Backend) (*TraceRepository, error) {
	idSeq, err := backend.GetSequence(traceRecIDSeq)
	if err != nil {
		return nil, err
	}
	return &TraceRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *TraceRepository) Close() error {
	return r.idSeq.Release()
}

// Append persists one retrieval trace. The trace ID and creation time are
// assigned here.
func (r *TraceRepository) Append(ctx context.Context, trace *core.RetrievalTrace) error {
	seq, err := r.idSeq.Next()
	if err != nil {
		return err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if seq == 0 {
		seq, err = r.idSeq.Next()
		if err != nil {
			return err
		}
	}

	trace.Id = core.ID(seq)
	if trace.CreatedAt.IsZero() {
		trace.CreatedAt = time.Now().UTC()
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTraceKey(trace.CreatedAt, seq)
		if err := tx.Set(key, storage.MarshalTrace(trace)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Recent retrieves the N most recent traces, newest first.
func (r *TraceRepository) Recent(ctx context.Context, limit int) ([]*core.RetrievalTrace, error) {
	if limit <= 0 {
		return nil, nil
	}

	var results []*core.RetrievalTrace
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the newest possible trace key and walk backwards.
		startKey := makePartialTraceKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(traceRecPrefix + ":")

		for iter.Seek(startKey); iter.Valid() && len(results) < limit; iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var trace *core.RetrievalTrace
			err := iter.Item().Value(func(val []byte) error {
				var err error
				trace, err = storage.UnmarshalTrace(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, trace)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}
