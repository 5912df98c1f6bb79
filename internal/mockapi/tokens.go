package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"PayFlow/internal/store"
)

const tokensKey = "db"

// TokenStore remembers the payment tokens created through the mock API as
// one {"tokens": [...]} document. The mock API runs it over a memory backend,
// so tokens live as long as the process.
type TokenStore struct {
	backend store.Backend
	mu      sync.Mutex
}

type tokensDocument struct {
	Tokens []string `json:"tokens"`
}

func NewTokenStore(backend store.Backend) *TokenStore {
	return &TokenStore{backend: backend}
}

func (s *TokenStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Tokens, nil
}

// Add stores a token once.
func (s *TokenStore) Add(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(doc.Tokens, token) {
		return nil
	}
	doc.Tokens = append(doc.Tokens, token)
	return s.save(ctx, doc)
}

func (s *TokenStore) Remove(ctx context.Context, tokens ...string) error {
	if len(tokens) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := doc.Tokens[:0]
	for _, t := range doc.Tokens {
		if !slices.Contains(tokens, t) {
			kept = append(kept, t)
		}
	}
	doc.Tokens = kept
	return s.save(ctx, doc)
}

func (s *TokenStore) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

func (s *TokenStore) load(ctx context.Context) (tokensDocument, error) {
	doc := tokensDocument{Tokens: []string{}}

	data, err := s.backend.Load(ctx, tokensKey)
	if errors.Is(err, store.ErrNotFound) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("load tokens: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode tokens: %w", err)
	}
	if doc.Tokens == nil {
		doc.Tokens = []string{}
	}
	return doc, nil
}

func (s *TokenStore) save(ctx context.Context, doc tokensDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}
	if err := s.backend.Save(ctx, tokensKey, data); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}
