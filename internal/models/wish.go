package models

import "time"

// WishStatus is the lifecycle state of a wish.
type WishStatus string

const (
	// StatusPending indicates a wish waiting for a traveler
	StatusPending WishStatus = "Pending"
	// StatusMatched indicates a wish claimed by a traveler
	StatusMatched WishStatus = "Matched"
	// StatusVerifying indicates a wish whose proof photo passed the authenticity check
	StatusVerifying WishStatus = "Verifying"
	// StatusCompleted is reserved; no operation transitions into it yet.
	StatusCompleted WishStatus = "Completed"
	// StatusCancelled is reserved; no operation transitions into it yet.
	StatusCancelled WishStatus = "Cancelled"
)

// Wish is a cross-border purchase request posted by a buyer.
type Wish struct {
	ID             string        `json:"id"`
	ItemName       string        `json:"itemName"`
	Description    string        `json:"description"`
	EstimatedPrice float64       `json:"estimatedPrice"`
	Reward         float64       `json:"reward"`
	Location       string        `json:"location"`
	Image          string        `json:"image"` // URL or data URI
	Tag            string        `json:"tag"`
	Status         WishStatus    `json:"status"`
	BuyerID        string        `json:"buyerId"`
	TravelerID     string        `json:"travelerId,omitempty"`
	Chat           []ChatMessage `json:"chat"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// WishFields holds the caller-supplied part of a new wish.
type WishFields struct {
	ItemName       string  `json:"itemName"`
	Description    string  `json:"description"`
	EstimatedPrice float64 `json:"estimatedPrice"`
	Reward         float64 `json:"reward"`
	Location       string  `json:"location"`
	Image          string  `json:"image"`
	Tag            string  `json:"tag"`
}

// Clone returns a copy of the wish that shares no chat backing array.
func (w Wish) Clone() Wish {
	chat := make([]ChatMessage, len(w.Chat))
	copy(chat, w.Chat)
	w.Chat = chat
	return w
}
