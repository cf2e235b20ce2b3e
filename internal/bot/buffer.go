package bot

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// BufferedMessage is one raw text message stashed until /process.
type BufferedMessage struct {
	ID         string
	Text       string
	ReceivedAt time.Time
}

// Buffer accumulates messages per chat. Telegram delivers updates one at a
// time, but the retrain ticker shares the process, so access is serialized.
type Buffer struct {
	mu    sync.Mutex
	chats map[int64][]BufferedMessage
}

func NewBuffer() *Buffer {
	return &Buffer{chats: make(map[int64][]BufferedMessage)}
}

// Add stashes a message and returns the chat's new buffer length.
func (b *Buffer) Add(chatID int64, text string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.chats[chatID] = append(b.chats[chatID], BufferedMessage{
		ID:         uuid.New().String(),
		Text:       text,
		ReceivedAt: time.Now(),
	})
	return len(b.chats[chatID])
}

// Messages returns a copy of the chat's buffer, oldest first.
func (b *Buffer) Messages(chatID int64) []BufferedMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	msgs := b.chats[chatID]
	out := make([]BufferedMessage, len(msgs))
	copy(out, msgs)
	return out
}

// Len reports how many messages the chat has buffered.
func (b *Buffer) Len(chatID int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.chats[chatID])
}

// Clear drops the chat's buffer and returns how many messages were dropped.
func (b *Buffer) Clear(chatID int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.chats[chatID])
	delete(b.chats, chatID)
	return n
}
