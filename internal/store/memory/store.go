// Package memory is an in-process implementation of store.Store. It is
// used when no DATABASE_URL is configured and by tests.
package memory

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"medgpt-backend/internal/models"
	"medgpt-backend/internal/store"

	"github.com/google/uuid"
)

// Compile-time check to ensure Store implements store.Store
var _ store.Store = (*Store)(nil)

type ruleKey struct{ a, b string }

type Store struct {
	mu          sync.RWMutex
	users       map[uuid.UUID]models.User
	emails      map[string]uuid.UUID
	medications map[string][]byte // JSON, so callers never share slices
	rules       map[ruleKey]models.InteractionRule
	conditions  map[string]models.Condition
	bookmarks   map[uuid.UUID]map[string]time.Time
	chats       map[uuid.UUID]models.Chat
	now         func() time.Time
}

func New() *Store {
	return &Store{
		users:       make(map[uuid.UUID]models.User),
		emails:      make(map[string]uuid.UUID),
		medications: make(map[string][]byte),
		rules:       make(map[ruleKey]models.InteractionRule),
		conditions:  make(map[string]models.Condition),
		bookmarks:   make(map[uuid.UUID]map[string]time.Time),
		chats:       make(map[uuid.UUID]models.Chat),
		now:         time.Now,
	}
}

// --- Users ---

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.emails[user.Email]; taken {
		return store.ErrAlreadyExists
	}
	if _, taken := s.users[user.ID]; taken {
		return store.ErrAlreadyExists
	}
	now := s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	s.emails[user.Email] = user.ID
	return nil
}

// --- Catalog ---

func (s *Store) decodeMedication(raw []byte) (models.Medication, error) {
	var m models.Medication
	err := json.Unmarshal(raw, &m)
	return m, err
}

// matches reports whether m satisfies every non-empty part of f.
func matches(m models.Medication, f store.MedicationFilter) bool {
	if f.Category != "" && !strings.EqualFold(m.Category, f.Category) {
		return false
	}
	if len(f.IDs) > 0 {
		found := false
		for _, id := range f.IDs {
			if id == m.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		fields := []string{m.Name, m.BrandName, m.GenericName, m.DrugClass, m.Category}
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	}
	return true
}

func (s *Store) ListMedications(_ context.Context, filter store.MedicationFilter) ([]models.Medication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meds := make([]models.Medication, 0, len(s.medications))
	for _, raw := range s.medications {
		m, err := s.decodeMedication(raw)
		if err != nil {
			return nil, err
		}
		if matches(m, filter) {
			meds = append(meds, m)
		}
	}
	sort.Slice(meds, func(i, j int) bool { return meds[i].Name < meds[j].Name })
	return meds, nil
}

func (s *Store) GetMedicationByID(_ context.Context, id string) (*models.Medication, error) {
	s.mu.RLock()
	raw, ok := s.medications[id]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}
	m, err := s.decodeMedication(raw)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) UpsertMedication(_ context.Context, med *models.Medication) error {
	raw, err := json.Marshal(med)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.medications[med.ID] = raw
	s.mu.Unlock()
	return nil
}

func (s *Store) ListInteractionRules(_ context.Context) ([]models.InteractionRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rules := make([]models.InteractionRule, 0, len(s.rules))
	for _, r := range s.rules {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].MedicationA != rules[j].MedicationA {
			return rules[i].MedicationA < rules[j].MedicationA
		}
		return rules[i].MedicationB < rules[j].MedicationB
	})
	return rules, nil
}

func (s *Store) UpsertInteractionRule(_ context.Context, rule models.InteractionRule) error {
	rule = rule.Normalized()
	s.mu.Lock()
	s.rules[ruleKey{rule.MedicationA, rule.MedicationB}] = rule
	s.mu.Unlock()
	return nil
}

func (s *Store) ListConditions(_ context.Context) ([]models.Condition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conds := make([]models.Condition, 0, len(s.conditions))
	for _, c := range s.conditions {
		conds = append(conds, c)
	}
	sort.Slice(conds, func(i, j int) bool { return conds[i].Name < conds[j].Name })
	return conds, nil
}

func (s *Store) GetConditionByID(_ context.Context, id string) (*models.Condition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.conditions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (s *Store) UpsertCondition(_ context.Context, cond models.Condition) error {
	s.mu.Lock()
	s.conditions[cond.ID] = cond
	s.mu.Unlock()
	return nil
}

// --- Bookmarks ---

func (s *Store) AddBookmark(_ context.Context, userID uuid.UUID, medicationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.medications[medicationID]; !ok {
		return store.ErrNotFound
	}
	set, ok := s.bookmarks[userID]
	if !ok {
		set = make(map[string]time.Time)
		s.bookmarks[userID] = set
	}
	if _, dup := set[medicationID]; dup {
		return store.ErrAlreadyExists
	}
	set[medicationID] = s.now()
	return nil
}

func (s *Store) RemoveBookmark(_ context.Context, userID uuid.UUID, medicationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.bookmarks[userID]
	if _, ok := set[medicationID]; !ok {
		return store.ErrNotFound
	}
	delete(set, medicationID)
	return nil
}

// ListBookmarkIDs returns bookmarked medication IDs, newest first.
func (s *Store) ListBookmarkIDs(_ context.Context, userID uuid.UUID) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.bookmarks[userID]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := set[ids[i]], set[ids[j]]
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return ids[i] < ids[j]
	})
	return ids, nil
}

func (s *Store) ClearBookmarks(_ context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.bookmarks[userID]))
	delete(s.bookmarks, userID)
	return n, nil
}

// --- Chats ---

func copyChat(c models.Chat) *models.Chat {
	c.ChatData = append([]byte(nil), c.ChatData...)
	return &c
}

func (s *Store) CreateChat(_ context.Context, arg store.CreateChatParams) (*models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.chats[arg.ID]; dup {
		return nil, store.ErrAlreadyExists
	}
	if _, ok := s.users[arg.UserID]; !ok {
		return nil, store.ErrNotFound
	}
	now := s.now()
	chat := models.Chat{
		ID:        arg.ID,
		UserID:    arg.UserID,
		Title:     arg.Title,
		ChatData:  append([]byte(nil), arg.ChatData...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.chats[chat.ID] = chat
	log.Printf("[MemoryStore] CreateChat: stored chat %s for user %s", chat.ID, chat.UserID)
	return copyChat(chat), nil
}

func (s *Store) GetChatByID(_ context.Context, id uuid.UUID, userID uuid.UUID) (*models.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.chats[id]
	if !ok || c.UserID != userID {
		return nil, store.ErrNotFound
	}
	return copyChat(c), nil
}

// ListChatsByUser returns the user's chats, most recently updated first.
func (s *Store) ListChatsByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]models.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var chats []models.Chat
	for _, c := range s.chats {
		if c.UserID == userID {
			chats = append(chats, c)
		}
	}
	sort.Slice(chats, func(i, j int) bool {
		if !chats[i].UpdatedAt.Equal(chats[j].UpdatedAt) {
			return chats[i].UpdatedAt.After(chats[j].UpdatedAt)
		}
		return chats[i].ID.String() < chats[j].ID.String()
	})
	if offset >= len(chats) {
		return []models.Chat{}, nil
	}
	chats = chats[offset:]
	if limit > 0 && limit < len(chats) {
		chats = chats[:limit]
	}
	out := make([]models.Chat, len(chats))
	for i := range chats {
		out[i] = *copyChat(chats[i])
	}
	return out, nil
}

func (s *Store) UpdateChatData(_ context.Context, id uuid.UUID, userID uuid.UUID, chatData []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chats[id]
	if !ok || c.UserID != userID {
		return store.ErrNotFound
	}
	c.ChatData = append([]byte(nil), chatData...)
	c.UpdatedAt = s.now()
	s.chats[id] = c
	return nil
}

func (s *Store) DeleteChat(_ context.Context, id uuid.UUID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chats[id]
	if !ok || c.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.chats, id)
	return nil
}
