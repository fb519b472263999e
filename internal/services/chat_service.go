package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dias221467/tagwish/internal/hub"
	"github.com/Dias221467/tagwish/internal/models"
	"github.com/Dias221467/tagwish/internal/repository"
)

// ErrEmptyMessage is returned when a chat message has no visible text.
var ErrEmptyMessage = fmt.Errorf("message text is empty")

// ChatService handles the chat thread attached to each wish.
type ChatService struct {
	store  *repository.WishStore
	events hub.Publisher
}

func NewChatService(store *repository.WishStore, events hub.Publisher) *ChatService {
	return &ChatService{store: store, events: events}
}

// SendMessage appends a message from the current user and pushes it to subscribers.
func (s *ChatService) SendMessage(ctx context.Context, wishID, text string) (models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	sender := s.store.CurrentUser()
	msg, err := s.store.AppendMessage(wishID, sender.ID, text)
	if err != nil {
		return models.ChatMessage{}, err
	}

	s.events.Publish(wishID, hub.Event{Type: hub.EventMessage, Payload: msg})
	return msg, nil
}

// GetChat returns the messages of a wish in send order.
func (s *ChatService) GetChat(ctx context.Context, wishID string) ([]models.ChatMessage, error) {
	wish, err := s.store.Wish(wishID)
	if err != nil {
		return nil, err
	}
	return wish.Chat, nil
}
