// Package store is the flow state gateway: typed access to one JSON record per
// flow, persisted through a pluggable Backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"PayFlow/pkg/logger"
)

const DefaultKey = "sdk-example-app-storage"

const lockStripes = 64

// Store hands out gateways that share one backend.
type Store struct {
	backend Backend
	key     string
	l       *logger.Logger

	locks [lockStripes]sync.Mutex
}

func New(backend Backend, key string, l *logger.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{backend: backend, key: key, l: l}
}

// Gateway returns the gateway of one flow. An empty flowID addresses the bare key.
func (s *Store) Gateway(flowID string) *Gateway {
	key := s.key
	if flowID != "" {
		key = s.key + ":" + flowID
	}
	return &Gateway{store: s, key: key}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

func (s *Store) lock(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &s.locks[h.Sum32()%lockStripes]
}

// load reads the record. A missing record is served as all-null without being
// written, so reads of unknown flows leave nothing behind. A blob that is not a
// JSON object is replaced by the all-null record and written back. Any other
// backend error is returned and nothing is written.
func (s *Store) load(ctx context.Context, key string) (Record, error) {
	data, err := s.backend.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return NewRecord(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}

	r, err := decodeRecord(data)
	if err == nil {
		return r, nil
	}

	s.l.WithContext(ctx).Warn("store - load - reinitializing record: key=%s err=%v", key, err)
	r = NewRecord()
	if saveErr := s.save(ctx, key, r); saveErr != nil {
		s.l.WithContext(ctx).Error(fmt.Errorf("store - load - save: %w", saveErr))
	}
	return r, nil
}

func (s *Store) save(ctx context.Context, key string, r Record) error {
	data, err := encodeRecord(r)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := s.backend.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// update runs fn against the current record and persists the result, serialized per key.
func (s *Store) update(ctx context.Context, key string, fn func(r Record) error) error {
	mu := s.lock(key)
	mu.Lock()
	defer mu.Unlock()

	r, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	if err := fn(r); err != nil {
		return err
	}
	return s.save(ctx, key, r)
}

// replace writes a fresh all-null record shaped by fn without reading the old one.
func (s *Store) replace(ctx context.Context, key string, fn func(r Record)) error {
	mu := s.lock(key)
	mu.Lock()
	defer mu.Unlock()

	r := NewRecord()
	fn(r)
	return s.save(ctx, key, r)
}

func (s *Store) clear(ctx context.Context, key string) error {
	mu := s.lock(key)
	mu.Lock()
	defer mu.Unlock()

	if err := s.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// read never fails: a backend error is logged and the call sees the all-null
// record, which is not written back.
func (s *Store) read(ctx context.Context, key string) Record {
	mu := s.lock(key)
	mu.Lock()
	defer mu.Unlock()

	r, err := s.load(ctx, key)
	if err != nil {
		s.l.WithContext(ctx).Error(fmt.Errorf("store - read: %w", err))
		return NewRecord()
	}
	return r
}
