package app

// Store holds the conversations shown in the current session. Entries are
// immutable snapshots: the collection is either replaced wholesale after a
// list fetch or shrunk one id at a time after a successful delete, never
// patched field by field.
//
// All mutation happens from request completion handlers running on the
// single UI event loop, so no locking is needed. A delete racing a list
// reload resolves to whichever completion runs last; that interleaving is
// accepted behavior, not prevented.
type Store struct {
	items []Conversation
}

func NewStore() *Store {
	return &Store{}
}

// ReplaceAll swaps the entire collection. Server order is kept as-is; the
// API already returns newest-first and the client never re-sorts.
func (s *Store) ReplaceAll(items []Conversation) {
	s.items = make([]Conversation, len(items))
	copy(s.items, items)
}

// RemoveByID drops one entry and reports whether it was present. Removing
// an absent id is a no-op, not an error.
func (s *Store) RemoveByID(id string) bool {
	for i, c := range s.items {
		if c.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a copy of the current entries in server order.
func (s *Store) All() []Conversation {
	out := make([]Conversation, len(s.items))
	copy(out, s.items)
	return out
}

// Get looks up one entry by id.
func (s *Store) Get(id string) (Conversation, bool) {
	for _, c := range s.items {
		if c.ID == id {
			return c, true
		}
	}
	return Conversation{}, false
}

func (s *Store) Len() int {
	return len(s.items)
}
