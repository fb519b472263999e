package repository

import (
	"iter"
	"strings"

	"github.com/Dias221467/tagwish/internal/models"
)

// Predicate selects wishes for a filtered view.
type Predicate func(models.Wish) bool

// View is the ownership partition of the wish list.
type View string

const (
	// ViewExplore lists wishes not authored by the current user.
	ViewExplore View = "explore"
	// ViewMine lists wishes authored by the current user.
	ViewMine View = "mine"
)

// Filter returns a lazy view of the wishes matching pred; a nil pred matches all.
// Every range over the returned sequence takes a fresh snapshot, so the view can be
// iterated more than once and reflects mutations made in between.
func (s *WishStore) Filter(pred Predicate) iter.Seq[models.Wish] {
	return func(yield func(models.Wish) bool) {
		s.mu.RLock()
		snapshot := make([]models.Wish, len(s.wishes))
		copy(snapshot, s.wishes)
		s.mu.RUnlock()

		for _, w := range snapshot {
			if pred != nil && !pred(w) {
				continue
			}
			if !yield(w.Clone()) {
				return
			}
		}
	}
}

// OwnedBy matches wishes whose buyer is userID.
func OwnedBy(userID string) Predicate {
	return func(w models.Wish) bool { return w.BuyerID == userID }
}

// NotOwnedBy matches wishes whose buyer is anyone but userID.
func NotOwnedBy(userID string) Predicate {
	return func(w models.Wish) bool { return w.BuyerID != userID }
}

// ForView returns the ownership predicate of a view. Unknown views fall back to explore.
func ForView(view View, userID string) Predicate {
	if view == ViewMine {
		return OwnedBy(userID)
	}
	return NotOwnedBy(userID)
}

// MatchesQuery matches wishes whose item name or location contains q, ignoring case.
func MatchesQuery(q string) Predicate {
	q = strings.ToLower(q)
	return func(w models.Wish) bool {
		return strings.Contains(strings.ToLower(w.ItemName), q) ||
			strings.Contains(strings.ToLower(w.Location), q)
	}
}

// And matches wishes accepted by every predicate.
func And(preds ...Predicate) Predicate {
	return func(w models.Wish) bool {
		for _, p := range preds {
			if !p(w) {
				return false
			}
		}
		return true
	}
}

// Collect drains a wish sequence into a slice. The result is never nil.
func Collect(seq iter.Seq[models.Wish]) []models.Wish {
	out := []models.Wish{}
	for w := range seq {
		out = append(out, w)
	}
	return out
}
