package repository

import (
	"sync"
	"time"

	"github.com/Dias221467/tagwish/internal/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrWishNotFound is returned when a wish id matches no record.
	ErrWishNotFound = errors.New("wish not found")
	// ErrInvalidTransition is returned when a wish is not in the state an operation requires.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// MutationResult is the tri-state outcome of a store mutation.
type MutationResult int

const (
	Applied MutationResult = iota
	NotFound
	InvalidTransition
)

func (r MutationResult) String() string {
	switch r {
	case Applied:
		return "applied"
	case NotFound:
		return "not-found"
	case InvalidTransition:
		return "invalid-transition"
	default:
		return "unknown"
	}
}

// Outcome maps an error returned by a WishStore mutation to its MutationResult.
// Errors the store never returns are reported as InvalidTransition.
func Outcome(err error) MutationResult {
	switch {
	case err == nil:
		return Applied
	case errors.Is(err, ErrWishNotFound):
		return NotFound
	default:
		return InvalidTransition
	}
}

// WishStore holds the wish collection and the current user in memory.
// Wishes are kept most-recent-first. All reads return copies.
type WishStore struct {
	mu     sync.RWMutex
	wishes []models.Wish
	user   models.User

	now   func() time.Time
	newID func() string
}

// Option customises a WishStore.
type Option func(*WishStore)

// WithClock overrides the time source used for createdAt and message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *WishStore) { s.now = now }
}

// WithIDGenerator overrides how wish and message ids are generated.
func WithIDGenerator(newID func() string) Option {
	return func(s *WishStore) { s.newID = newID }
}

// NewWishStore creates a store seeded with the given wishes and current user.
func NewWishStore(seed []models.Wish, user models.User, opts ...Option) *WishStore {
	s := &WishStore{
		wishes: make([]models.Wish, 0, len(seed)),
		user:   user,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, w := range seed {
		s.wishes = append(s.wishes, w.Clone())
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateWish adds a Pending wish at the head of the collection and debits the
// current user's balance by estimatedPrice + reward. The balance has no lower bound.
func (s *WishStore) CreateWish(fields models.WishFields, creatorID string) models.Wish {
	s.mu.Lock()
	defer s.mu.Unlock()

	wish := models.Wish{
		ID:             s.newID(),
		ItemName:       fields.ItemName,
		Description:    fields.Description,
		EstimatedPrice: fields.EstimatedPrice,
		Reward:         fields.Reward,
		Location:       fields.Location,
		Image:          fields.Image,
		Tag:            fields.Tag,
		Status:         models.StatusPending,
		BuyerID:        creatorID,
		Chat:           []models.ChatMessage{},
		CreatedAt:      s.now(),
	}

	wishes := make([]models.Wish, 0, len(s.wishes)+1)
	wishes = append(wishes, wish)
	s.wishes = append(wishes, s.wishes...)
	s.user.Balance -= fields.EstimatedPrice + fields.Reward

	return wish.Clone()
}

// ClaimWish moves a Pending wish to Matched and records the traveler.
func (s *WishStore) ClaimWish(wishID, travelerID string) error {
	return s.update(wishID, func(w *models.Wish) error {
		if w.Status != models.StatusPending {
			return errors.Wrapf(ErrInvalidTransition, "claim wish %s: status is %s", wishID, w.Status)
		}
		w.Status = models.StatusMatched
		w.TravelerID = travelerID
		return nil
	})
}

// AppendMessage appends a chat message to the wish. Text is stored as given.
func (s *WishStore) AppendMessage(wishID, senderID, text string) (models.ChatMessage, error) {
	var msg models.ChatMessage
	err := s.update(wishID, func(w *models.Wish) error {
		msg = models.ChatMessage{
			ID:        s.newID(),
			SenderID:  senderID,
			Text:      text,
			Timestamp: s.now(),
		}
		chat := make([]models.ChatMessage, len(w.Chat), len(w.Chat)+1)
		copy(chat, w.Chat)
		w.Chat = append(chat, msg)
		return nil
	})
	if err != nil {
		return models.ChatMessage{}, err
	}
	return msg, nil
}

// MarkVerifying moves a Matched wish to Verifying.
func (s *WishStore) MarkVerifying(wishID string) error {
	return s.update(wishID, func(w *models.Wish) error {
		if w.Status != models.StatusMatched {
			return errors.Wrapf(ErrInvalidTransition, "mark wish %s verifying: status is %s", wishID, w.Status)
		}
		w.Status = models.StatusVerifying
		return nil
	})
}

// Wish returns a copy of the wish with the given id.
func (s *WishStore) Wish(id string) (models.Wish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Wish{}, errors.Wrapf(ErrWishNotFound, "wish %s", id)
	}
	return s.wishes[i].Clone(), nil
}

// Wishes returns a copy of the whole collection in display order.
func (s *WishStore) Wishes() []models.Wish {
	return Collect(s.Filter(nil))
}

// CurrentUser returns a copy of the acting user.
func (s *WishStore) CurrentUser() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetRole switches the current user's view role and returns the updated user.
func (s *WishStore) SetRole(role models.UserRole) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.Role = role
	return s.user
}

// update applies fn to a private copy of the wish and swaps it in only when fn succeeds.
func (s *WishStore) update(wishID string, fn func(*models.Wish) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(wishID)
	if i < 0 {
		return errors.Wrapf(ErrWishNotFound, "wish %s", wishID)
	}
	w := s.wishes[i].Clone()
	if err := fn(&w); err != nil {
		return err
	}
	s.wishes[i] = w
	return nil
}

func (s *WishStore) indexOf(id string) int {
	for i := range s.wishes {
		if s.wishes[i].ID == id {
			return i
		}
	}
	return -1
}
