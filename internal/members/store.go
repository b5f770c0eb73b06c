package members

import "slices"

// Store is an ordered in-memory collection of records keyed by ID.
// It is not safe for concurrent use; the owner serializes access.
type Store struct {
	records []Record
}

func NewStore() *Store {
	return &Store{}
}

// Load replaces the whole store. For duplicate ids the first record wins,
// records with an empty id are dropped. Dropped records are returned.
func (s *Store) Load(records []Record) (dropped []Record) {
	loaded := make([]Record, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, r := range records {
		if _, dup := seen[r.ID]; dup || r.ID == "" {
			dropped = append(dropped, r)
			continue
		}
		seen[r.ID] = struct{}{}
		loaded = append(loaded, r)
	}

	s.records = loaded
	return dropped
}

// Commit merges patch into the record with the given id, or appends a new
// record when there is none. Returns a snapshot of the store.
func (s *Store) Commit(id string, patch Patch) []Record {
	idx := s.index(id)
	if idx < 0 {
		s.records = append(s.records, Record{ID: id}.apply(patch))
	} else {
		s.records[idx] = s.records[idx].apply(patch)
	}
	return s.Records()
}

func (s *Store) Remove(id string) bool {
	idx := s.index(id)
	if idx < 0 {
		return false
	}

	s.records = slices.Delete(s.records, idx, idx+1)
	return true
}

func (s *Store) Get(id string) (Record, bool) {
	idx := s.index(id)
	if idx < 0 {
		return Record{}, false
	}
	return s.records[idx], true
}

func (s *Store) Records() []Record {
	return slices.Clone(s.records)
}

func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.records, func(r Record) bool {
		return r.ID == id
	})
}
