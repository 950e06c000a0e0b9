package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"listly/internal/list/models"
	id "listly/pkg/domain"
	"listly/pkg/sentinel"
)

// InMemory keeps list aggregates in a map with a name index. Aggregates are
// deep-copied on the way in and out so callers can never mutate stored state
// behind the lock.
type InMemory struct {
	mu     sync.RWMutex
	lists  map[id.ListID]*models.List
	byName map[string]id.ListID
}

func NewInMemory() *InMemory {
	return &InMemory{
		lists:  make(map[id.ListID]*models.List),
		byName: make(map[string]id.ListID),
	}
}

// deepCopy round-trips through JSON; list aggregates are small and this keeps
// the copy honest as the model grows.
func deepCopy(list *models.List) *models.List {
	raw, _ := json.Marshal(list)
	var out models.List
	_ = json.Unmarshal(raw, &out)
	return &out
}

func (s *InMemory) Create(_ context.Context, list *models.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(list.Name)
	if _, taken := s.byName[key]; taken {
		return sentinel.ErrAlreadyUsed
	}
	s.lists[list.ID] = deepCopy(list)
	s.byName[key] = list.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, listID id.ListID) (*models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, ok := s.lists[listID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return deepCopy(list), nil
}

func (s *InMemory) FindByMember(_ context.Context, userID id.UserID) ([]*models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.List
	for _, list := range s.lists {
		if list.CanAccess(userID) {
			out = append(out, deepCopy(list))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemory) Update(_ context.Context, list *models.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.lists[list.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	// Renames keep the name index consistent.
	if !strings.EqualFold(old.Name, list.Name) {
		key := strings.ToLower(list.Name)
		if _, taken := s.byName[key]; taken {
			return sentinel.ErrAlreadyUsed
		}
		delete(s.byName, strings.ToLower(old.Name))
		s.byName[key] = list.ID
	}
	s.lists[list.ID] = deepCopy(list)
	return nil
}

func (s *InMemory) Delete(_ context.Context, listID id.ListID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.lists[listID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byName, strings.ToLower(list.Name))
	delete(s.lists, listID)
	return nil
}
