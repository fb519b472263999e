package services

import (
	"context"
	"testing"

	"github.com/Dias221467/tagwish/internal/hub"
	"github.com/Dias221467/tagwish/internal/models"
	"github.com/Dias221467/tagwish/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageAppendsAndPublishes(t *testing.T) {
	events := &recorder{}
	svc := NewChatService(newStore(t), events)
	ctx := context.Background()

	first, err := svc.SendMessage(ctx, "1", "Are you in Shinjuku this week?")
	require.NoError(t, err)
	second, err := svc.SendMessage(ctx, "1", "I can pick it up Friday")
	require.NoError(t, err)

	chat, err := svc.GetChat(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []models.ChatMessage{first, second}, chat)
	assert.Equal(t, "alex_01", chat[0].SenderID)

	got := events.all()
	require.Len(t, got, 2)
	assert.Equal(t, hub.EventMessage, got[0].Type)
	assert.Equal(t, first, got[0].Payload)
}

func TestSendMessageRejectsBlankText(t *testing.T) {
	events := &recorder{}
	svc := NewChatService(newStore(t), events)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.SendMessage(context.Background(), "1", text)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}

	chat, err := svc.GetChat(context.Background(), "1")
	require.NoError(t, err)
	assert.Empty(t, chat)
	assert.Empty(t, events.all())
}

func TestChatOnMissingWish(t *testing.T) {
	svc := NewChatService(newStore(t), &recorder{})

	_, err := svc.SendMessage(context.Background(), "nope", "hello")
	assert.ErrorIs(t, err, repository.ErrWishNotFound)

	_, err = svc.GetChat(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrWishNotFound)
}
