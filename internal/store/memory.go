package store

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/ezBadminton/badmintondraw/core"
)

// MemoryStore keeps the tournaments as encoded documents so
// loaded tournaments never alias saved ones
type MemoryStore struct {
	mu        sync.RWMutex
	documents map[string][]byte
	metadata  map[string]core.TournamentMetadata
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents: make(map[string][]byte),
		metadata:  make(map[string]core.TournamentMetadata),
	}
}

func (s *MemoryStore) Save(ctx context.Context, t *core.Tournament) error {
	if t.ID == "" {
		return ErrNoID
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[t.ID] = data
	s.metadata[t.ID] = t.Metadata()
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*core.Tournament, error) {
	s.mu.RLock()
	data, ok := s.documents[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	return decodeTournament(data)
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	delete(s.documents, id)
	delete(s.metadata, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]core.TournamentMetadata, error) {
	s.mu.RLock()
	list := make([]core.TournamentMetadata, 0, len(s.metadata))
	for _, m := range s.metadata {
		list = append(list, m)
	}
	s.mu.RUnlock()

	sortMetadata(list)
	return list, nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Decodes a stored document and checks the bracket links of
// its categories
func decodeTournament(data []byte) (*core.Tournament, error) {
	t := &core.Tournament{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament: %w", err)
	}
	for _, c := range t.Categories {
		if err := core.ValidateBracket(c.Matches); err != nil {
			return nil, fmt.Errorf("%w: bracket of %v: %w", ErrInvalid, c.Name, err)
		}
	}
	return t, nil
}

// Sorts by last update, newest first
func sortMetadata(list []core.TournamentMetadata) {
	slices.SortFunc(list, func(a, b core.TournamentMetadata) int {
		if c := b.LastUpdated.Compare(a.LastUpdated); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
