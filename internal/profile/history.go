// File: internal/profile/history.go
package profile

import (
	"github.com/google/uuid"
)

// historyEntry is satisfied by both embedded history entry shapes.
type historyEntry interface {
	EntryID() uuid.UUID
}

// prependEntry inserts entry at the front of the list, keeping the
// most-recent-first ordering of history lists.
func prependEntry[E historyEntry](list []E, entry E) []E {
	out := make([]E, 0, len(list)+1)
	out = append(out, entry)
	return append(out, list...)
}

// removeEntryByID removes the entry with the given identity and reports
// whether anything was removed. An unknown id leaves the list untouched.
func removeEntryByID[E historyEntry](list []E, id uuid.UUID) ([]E, bool) {
	for i, e := range list {
		if e.EntryID() == id {
			out := make([]E, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...), true
		}
	}
	return list, false
}
