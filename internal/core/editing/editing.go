// Package editing implements copy-on-write add, update and remove over the
// ordered record sequences of a document.
//
// Every operation returns a new slice and leaves its input untouched, so a
// DocumentState holding the old slice stays valid. Out-of-range indexes are
// programming errors and panic; callers that start from user input resolve
// an id with IndexOf first.
package editing

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/custodia-labs/archie/internal/core/domain"
)

// NewID returns a fresh random record identifier.
func NewID() string {
	return uuid.New().String()
}

// Add returns a copy of seq with one record appended. The factory receives
// the new record's id, which is guaranteed not to collide with any id in seq.
func Add[T domain.Record](seq []T, factory func(id string) T) []T {
	id := NewID()
	for IndexOf(seq, id) >= 0 {
		id = NewID()
	}
	rec := factory(id)
	if rec.RecordID() != id {
		panic(fmt.Sprintf("editing: factory returned id %q, want %q", rec.RecordID(), id))
	}
	out := make([]T, len(seq), len(seq)+1)
	copy(out, seq)
	return append(out, rec)
}

// AddAll appends several records, assigning each a fresh id through assign.
// Ids already present on the incoming records are ignored.
func AddAll[T domain.Record](seq []T, recs []T, assign func(rec T, id string) T) []T {
	out := slices.Clone(seq)
	for _, r := range recs {
		out = Add(out, func(id string) T { return assign(r, id) })
	}
	return out
}

// Update returns a copy of seq with the record at index replaced.
// The replacement must keep the id of the record it replaces.
func Update[T domain.Record](seq []T, index int, rec T) []T {
	checkIndex(len(seq), index)
	if seq[index].RecordID() != rec.RecordID() {
		panic(fmt.Sprintf("editing: update changes id %q to %q", seq[index].RecordID(), rec.RecordID()))
	}
	out := slices.Clone(seq)
	out[index] = rec
	return out
}

// Remove returns a copy of seq without the record at index.
// Later records shift left by one.
func Remove[T domain.Record](seq []T, index int) []T {
	checkIndex(len(seq), index)
	out := make([]T, 0, len(seq)-1)
	out = append(out, seq[:index]...)
	return append(out, seq[index+1:]...)
}

// IndexOf returns the position of the record with the given id, or -1.
func IndexOf[T domain.Record](seq []T, id string) int {
	return slices.IndexFunc(seq, func(r T) bool { return r.RecordID() == id })
}

func checkIndex(n, index int) {
	if index < 0 || index >= n {
		panic(fmt.Sprintf("editing: index %d out of range [0,%d)", index, n))
	}
}
