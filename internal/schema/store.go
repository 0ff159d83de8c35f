package schema

import (
	"sort"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/opal-lang/gatectl/internal/gatierr"
	"github.com/opal-lang/gatectl/internal/types"
)

// Store is the mapping tool-id -> ToolSchema (spec §3/§4.1). It carries no
// process-wide singleton state (§9): callers construct one at runtime init
// and pass it through the core explicitly. No operation mutates a stored
// schema in place; replacement always goes through store's version check.
type Store struct {
	mu      sync.RWMutex
	schemas map[string]*types.ToolSchema
}

// New constructs an empty Store.
func New() *Store {
	return &Store{schemas: make(map[string]*types.ToolSchema)}
}

// LoadJSON parses raw as a JSON schema document and loads it (spec §4.1).
func (s *Store) LoadJSON(raw []byte) error {
	ts, err := decodeJSON(raw)
	if err != nil {
		return err
	}
	return s.store(ts)
}

// LoadYAML parses raw as a YAML schema document and loads it.
func (s *Store) LoadYAML(raw []byte) error {
	ts, err := decodeYAML(raw)
	if err != nil {
		return err
	}
	return s.store(ts)
}

// store applies INV-5/INV-8: a schema replaces an existing one for the same
// id only on strictly greater version; atomically, with no partial state.
func (s *Store) store(ts *types.ToolSchema) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.schemas[ts.ID]; ok && ts.Version <= existing.Version {
		return gatierr.New(gatierr.SchemaVersionDowngrade, "schema version must strictly increase on reload").
			WithContext("tool_id", ts.ID)
	}
	s.schemas[ts.ID] = ts
	return nil
}

// Get returns the stored schema for id, or nil if absent.
func (s *Store) Get(id string) *types.ToolSchema {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schemas[id]
}

// Count returns the number of distinct tool ids currently stored.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.schemas)
}

// IDs returns every stored tool id, sorted, for display and for Suggest's
// candidate set.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.schemas))
	for id := range s.schemas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Suggest returns the closest known tool id to an unrecognized one, or ""
// if nothing is close enough to be a useful "did you mean" (spec_full §4:
// grounded on runtime/planner's use of fuzzysearch for unresolved decorator
// names). A candidate must contain the characters of unknown in order
// (case-insensitive); among those, the one with the smallest Levenshtein
// distance wins. Never participates in any authority or validation decision.
func (s *Store) Suggest(unknown string) string {
	ids := s.IDs()
	if len(ids) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(unknown, ids)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
