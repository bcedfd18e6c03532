// Package position maintains dense, zero-based ordering among the active
// children of a parent (lists within a board, cards within a list).
//
// The functions here are pure: they compute which sibling ranges have to be
// shifted and where the moved item lands. Storage adapters apply the
// resulting Shift values inside a single transaction, shifts first and the
// moved item last.
package position

import (
	"fmt"
	"slices"

	"github.com/heartmarshall/kanban-backend/internal/domain"
)

// Unbounded marks a Shift with no upper limit.
const Unbounded = -1

// Shift adds Delta to every active sibling whose position lies in [From, To].
// To == Unbounded means there is no upper limit.
type Shift struct {
	From  int
	To    int
	Delta int
}

// Contains reports whether position p falls inside the shifted range.
func (s Shift) Contains(p int) bool {
	if p < s.From {
		return false
	}
	return s.To == Unbounded || p <= s.To
}

// Apply returns p shifted by Delta when p is in range, p otherwise.
func (s Shift) Apply(p int) int {
	if s.Contains(p) {
		return p + s.Delta
	}
	return p
}

// Append returns the position for a new item given the current maximum
// active position among its siblings. A negative max means no siblings.
func Append(maxPos int) int {
	if maxPos < 0 {
		return 0
	}
	return maxPos + 1
}

// Remove returns the shift that closes the gap left by an item leaving
// position old (delete or archive).
func Remove(old int) Shift {
	return Shift{From: old + 1, To: Unbounded, Delta: -1}
}

// MoveWithin returns the shift for moving an item from old to target inside
// the same parent. The boolean is false when nothing has to move.
//
//	target > old: (old, target] moves down by one
//	target < old: [target, old) moves up by one
func MoveWithin(old, target int) (Shift, bool) {
	switch {
	case target > old:
		return Shift{From: old + 1, To: target, Delta: -1}, true
	case target < old:
		return Shift{From: target, To: old - 1, Delta: 1}, true
	default:
		return Shift{}, false
	}
}

// MoveAcross returns the shifts for moving an item from position old in its
// source parent to position target in another parent. The two shifts touch
// disjoint parents and may be applied in any order, but both must be applied
// before the moved item is written.
func MoveAcross(old, target int) (src, dst Shift) {
	return Remove(old), Shift{From: target, To: Unbounded, Delta: 1}
}

// ClampWithin validates target for a move inside a parent holding count
// active items (the moved item included) and clamps it to count-1.
func ClampWithin(target, count int) (int, error) {
	if target < 0 {
		return 0, negative()
	}
	if count <= 0 {
		return 0, nil
	}
	return min(target, count-1), nil
}

// ClampAcross validates target for inserting into a parent that currently
// holds count active items and clamps it to count (append).
func ClampAcross(target, count int) (int, error) {
	if target < 0 {
		return 0, negative()
	}
	return min(target, max(count, 0)), nil
}

// CheckDense verifies that positions is exactly {0, 1, ..., n-1}.
func CheckDense(positions []int) error {
	sorted := slices.Clone(positions)
	slices.Sort(sorted)
	for i, p := range sorted {
		if p != i {
			return domain.NewValidationError("position",
				fmt.Sprintf("positions must form a contiguous sequence from 0 to %d", len(sorted)-1))
		}
	}
	return nil
}

// CheckItems validates a bulk reorder payload: it must be non-empty, every
// position must be non-negative, and no id may appear twice.
func CheckItems[ID comparable](ids []ID, positions []int) error {
	if len(ids) == 0 {
		return domain.NewValidationError("items", "at least one item is required")
	}

	var errs []domain.FieldError
	seen := make(map[ID]struct{}, len(ids))
	for i, id := range ids {
		if _, dup := seen[id]; dup {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("items[%d].id", i),
				Message: "duplicate id",
			})
		}
		seen[id] = struct{}{}
		if positions[i] < 0 {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("items[%d].position", i),
				Message: "must be a non-negative integer",
			})
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func negative() error {
	return domain.NewValidationError("position", "must be a non-negative integer")
}
