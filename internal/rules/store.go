package rules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hollis/taxease/internal/common"
	"github.com/hollis/taxease/internal/model"
)

// Persister saves and loads the rule set across sessions.
type Persister interface {
	LoadRules(ctx context.Context) ([]model.VendorRule, error)
	SaveRules(ctx context.Context, rules []model.VendorRule) error
}

// Store owns the ordered set of vendor rules. It is the sole writer of the
// rule set; every mutation persists the new set and triggers a retroactive
// matcher pass over the record store before returning.
type Store struct {
	persister Persister
	records   RecordUpdater
	rules     []model.VendorRule
	mu        sync.RWMutex
}

// NewStore creates a rule store bound to a persistence slot and a record
// store. The persisted rule set is read once here; an absent or unreadable
// slot falls back to the built-in default rules.
func NewStore(ctx context.Context, persister Persister, records RecordUpdater) (*Store, error) {
	s := &Store{
		persister: persister,
		records:   records,
	}

	loaded, err := persister.LoadRules(ctx)
	switch {
	case errors.Is(err, common.ErrNotFound):
		s.rules = DefaultRules()
	case err != nil:
		slog.Warn("Stored rules unreadable, falling back to defaults", "error", err)
		s.rules = DefaultRules()
	default:
		s.rules = loaded
	}

	return s, nil
}

// Snapshot returns a copy of the current rule set in evaluation order.
func (s *Store) Snapshot() []model.VendorRule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.VendorRule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len returns the number of rules in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rules)
}

// AddRule appends one rule with a fresh id. The pattern must be non-empty
// and not already present (case-insensitive).
func (s *Store) AddRule(ctx context.Context, pattern string, category model.TaxCategory) (model.VendorRule, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return model.VendorRule{}, common.ErrEmptyPattern
	}
	if !category.IsValid() {
		return model.VendorRule{}, fmt.Errorf("%q: %w", category, common.ErrInvalidCategory)
	}

	s.mu.Lock()
	if s.hasPatternLocked(pattern) {
		s.mu.Unlock()
		return model.VendorRule{}, fmt.Errorf("rule with pattern %q already exists", pattern)
	}

	rule := model.VendorRule{
		ID:                uuid.NewString(),
		VendorNamePattern: pattern,
		TaxCategory:       category,
	}
	s.rules = append(s.rules, rule)
	s.mu.Unlock()

	if err := s.commit(ctx); err != nil {
		return model.VendorRule{}, err
	}

	slog.Info("Added vendor rule", "pattern", pattern, "category", category)
	return rule, nil
}

// ImportRules validates and appends raw rule entries in input order.
// Entries with an empty pattern or an unknown category are rejected
// individually; entries whose pattern already exists (case-insensitive,
// first seen wins) are dropped silently. Entries without an id get a fresh
// one. Returns the number of rules actually added.
func (s *Store) ImportRules(ctx context.Context, entries []model.VendorRule) (int, error) {
	s.mu.Lock()

	added := 0
	for _, entry := range entries {
		pattern := strings.TrimSpace(entry.VendorNamePattern)
		if pattern == "" {
			slog.Warn("Skipping rule with empty vendor pattern", "id", entry.ID)
			continue
		}
		category, ok := model.ParseCategory(string(entry.TaxCategory))
		if !ok {
			slog.Warn("Skipping rule with unknown category",
				"pattern", pattern,
				"category", entry.TaxCategory)
			continue
		}
		if s.hasPatternLocked(pattern) {
			continue
		}

		id := entry.ID
		if id == "" {
			id = uuid.NewString()
		}

		s.rules = append(s.rules, model.VendorRule{
			ID:                id,
			VendorNamePattern: pattern,
			TaxCategory:       category,
		})
		added++
	}
	s.mu.Unlock()

	if added == 0 {
		return 0, nil
	}

	if err := s.commit(ctx); err != nil {
		return 0, err
	}

	slog.Info("Imported vendor rules", "added", added, "total", s.Len())
	return added, nil
}

// DeleteRule removes a rule by id. Categories the rule already assigned to
// existing records are left as-is: deletion only affects future
// classifications.
func (s *Store) DeleteRule(ctx context.Context, id string) error {
	s.mu.Lock()
	found := false
	for i, rule := range s.rules {
		if rule.ID == id {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("rule %q: %w", id, common.ErrNotFound)
	}

	if err := s.commit(ctx); err != nil {
		return err
	}

	slog.Info("Deleted vendor rule", "id", id)
	return nil
}

// ExportJSON serializes the current rule set as importable JSON.
func (s *Store) ExportJSON() ([]byte, error) {
	rules := s.Snapshot()
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize rules: %w", err)
	}
	return data, nil
}

// ParseRuleFile decodes one rule-definition file: a JSON array of rule
// entries. Validation of individual entries happens at import time.
func ParseRuleFile(data []byte) ([]model.VendorRule, error) {
	var entries []model.VendorRule
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse rule file: %w", err)
	}
	return entries, nil
}

// commit persists the current rule set and re-applies it to the record
// store. Called after every mutation.
func (s *Store) commit(ctx context.Context) error {
	if err := s.persister.SaveRules(ctx, s.Snapshot()); err != nil {
		return fmt.Errorf("failed to persist rules: %w", err)
	}

	if updated := Apply(s.records, s.Snapshot()); updated > 0 {
		slog.Info("Retroactively recategorized records", "count", updated)
	}

	return nil
}

// hasPatternLocked reports whether a pattern already exists, compared
// case-insensitively. Caller must hold the lock.
func (s *Store) hasPatternLocked(pattern string) bool {
	for _, rule := range s.rules {
		if strings.EqualFold(rule.VendorNamePattern, pattern) {
			return true
		}
	}
	return false
}
