package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"medgpt-backend/internal/assistant"
	"medgpt-backend/internal/models"
	"medgpt-backend/internal/store"

	"github.com/google/uuid"
)

const (
	// Greeting opens every new conversation.
	Greeting = "Hello, I'm MedGPT! I can help you with information about medications, symptoms, and health conditions. How may I assist you today?"
	// Apology replaces the assistant reply when no provider answered.
	Apology = "I'm sorry, I encountered an error processing your request. Please try again later."

	defaultChatTitle = "New conversation"
	maxTitleRunes    = 60
)

var (
	ErrChatNotFound   = errors.New("chat not found")
	ErrEmptyMessage   = errors.New("message cannot be empty")
	ErrCorruptChat    = errors.New("stored conversation could not be read")
	ErrSealingChat    = errors.New("failed to seal conversation")
	errNoReplierReply = errors.New("assistant returned no reply")
)

// Replier produces the next assistant message for a transcript.
type Replier interface {
	Reply(ctx context.Context, history []models.ChatMessage) (*assistant.Completion, error)
}

// Sealer encrypts transcripts at rest.
type Sealer interface {
	SealJSON(v any) ([]byte, error)
	OpenJSON(sealed []byte, v any) error
}

// ChatService handles the assistant conversations of signed-in users.
type ChatService struct {
	store   store.Store
	replier Replier
	sealer  Sealer
	locks   *keyedMutex
	now     func() time.Time
}

// NewChatService creates a new ChatService.
func NewChatService(s store.Store, replier Replier, sealer Sealer) *ChatService {
	return &ChatService{
		store:   s,
		replier: replier,
		sealer:  sealer,
		locks:   newKeyedMutex(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// mapChatToResponse converts a stored chat and its opened transcript to
// the API shape, rendering assistant messages to HTML.
func (s *ChatService) mapChatToResponse(dbChat *models.Chat, messages []models.ChatMessage) *models.ChatResponse {
	resp := &models.ChatResponse{
		ID:        dbChat.ID,
		Title:     dbChat.Title,
		Messages:  make([]models.ChatMessageResponse, 0, len(messages)),
		CreatedAt: dbChat.CreatedAt,
		UpdatedAt: dbChat.UpdatedAt,
	}
	for _, m := range messages {
		entry := models.ChatMessageResponse{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
			Error:     m.Error,
		}
		if m.Role == models.RoleAssistant && !m.Error {
			entry.ContentHTML = assistant.RenderHTML(m.Content)
		}
		resp.Messages = append(resp.Messages, entry)
	}
	return resp
}

func (s *ChatService) open(dbChat *models.Chat) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := s.sealer.OpenJSON(dbChat.ChatData, &messages); err != nil {
		log.Printf("ERROR [ChatService] Failed to open chat %s: %v", dbChat.ID, err)
		return nil, ErrCorruptChat
	}
	return messages, nil
}

func (s *ChatService) load(ctx context.Context, userID, chatID uuid.UUID) (*models.Chat, []models.ChatMessage, error) {
	dbChat, err := s.store.GetChatByID(ctx, chatID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrChatNotFound
		}
		return nil, nil, fmt.Errorf("failed to get chat from store: %w", err)
	}
	messages, err := s.open(dbChat)
	if err != nil {
		return nil, nil, err
	}
	return dbChat, messages, nil
}

// respond appends the assistant reply to messages. When the assistant
// fails the apology is appended instead and the bool is true.
func (s *ChatService) respond(ctx context.Context, messages []models.ChatMessage) ([]models.ChatMessage, bool) {
	var text string
	var err error
	if s.replier == nil {
		err = assistant.ErrNoProvider
	} else {
		var c *assistant.Completion
		c, err = s.replier.Reply(ctx, messages)
		if err == nil {
			text = strings.TrimSpace(c.Text)
			if text == "" {
				err = errNoReplierReply
			}
		}
	}
	if err != nil {
		log.Printf("WARN [ChatService] Assistant reply failed: %v", err)
		return append(messages, models.ChatMessage{
			Role:      models.RoleAssistant,
			Content:   Apology,
			Timestamp: s.now(),
			Error:     true,
		}), true
	}
	return append(messages, models.ChatMessage{
		Role:      models.RoleAssistant,
		Content:   text,
		Timestamp: s.now(),
	}), false
}

// CreateChat starts a conversation with the greeting. When an initial
// message is given it is sent right away.
func (s *ChatService) CreateChat(ctx context.Context, userID uuid.UUID, req models.CreateChatRequest) (*models.ChatResponse, error) {
	initial := ""
	if req.InitialMessage != nil {
		initial = strings.TrimSpace(*req.InitialMessage)
	}
	title := ""
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
	}
	if title == "" {
		title = titleFrom(initial)
	}

	messages := []models.ChatMessage{{
		Role:      models.RoleAssistant,
		Content:   Greeting,
		Timestamp: s.now(),
	}}
	failed := false
	if initial != "" {
		messages = append(messages, models.ChatMessage{
			Role:      models.RoleUser,
			Content:   initial,
			Timestamp: s.now(),
		})
		messages, failed = s.respond(ctx, messages)
	}

	sealed, err := s.sealer.SealJSON(messages)
	if err != nil {
		log.Printf("ERROR [ChatService] Failed to seal new chat: %v", err)
		return nil, ErrSealingChat
	}
	dbChat, err := s.store.CreateChat(ctx, store.CreateChatParams{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    title,
		ChatData: sealed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat in store: %w", err)
	}

	log.Printf("[ChatService] Created chat %s for user %s", dbChat.ID, userID)
	resp := s.mapChatToResponse(dbChat, messages)
	resp.AssistantError = failed
	return resp, nil
}

// GetChat returns one conversation owned by userID.
func (s *ChatService) GetChat(ctx context.Context, userID, chatID uuid.UUID) (*models.ChatResponse, error) {
	dbChat, messages, err := s.load(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	return s.mapChatToResponse(dbChat, messages), nil
}

// ListChats returns the caller's conversations, most recently updated
// first.
func (s *ChatService) ListChats(ctx context.Context, userID uuid.UUID, limit, offset int) (*models.ListChatsResponse, error) {
	// Set reasonable defaults for limit and offset
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	dbChats, err := s.store.ListChatsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats from store: %w", err)
	}

	summaries := make([]models.ChatSummary, 0, len(dbChats))
	for i := range dbChats {
		messages, err := s.open(&dbChats[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.ChatSummary{
			ID:           dbChats[i].ID,
			Title:        dbChats[i].Title,
			MessageCount: len(messages),
			CreatedAt:    dbChats[i].CreatedAt,
			UpdatedAt:    dbChats[i].UpdatedAt,
		})
	}
	return &models.ListChatsResponse{Chats: summaries}, nil
}

// DeleteChat removes a conversation owned by userID.
func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID uuid.UUID) error {
	unlock := s.locks.Lock(chatID)
	defer unlock()
	if err := s.store.DeleteChat(ctx, chatID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrChatNotFound
		}
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	log.Printf("[ChatService] Deleted chat %s for user %s", chatID, userID)
	return nil
}

// SendMessage appends a user message and the assistant's reply. Sends
// to the same conversation are applied one at a time in arrival order.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID uuid.UUID, message string) (*models.ChatResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: %v", ErrValidation, ErrEmptyMessage)
	}

	unlock := s.locks.Lock(chatID)
	defer unlock()

	dbChat, messages, err := s.load(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	messages = append(messages, models.ChatMessage{
		Role:      models.RoleUser,
		Content:   message,
		Timestamp: s.now(),
	})
	messages, failed := s.respond(ctx, messages)

	sealed, err := s.sealer.SealJSON(messages)
	if err != nil {
		log.Printf("ERROR [ChatService] Failed to seal chat %s: %v", chatID, err)
		return nil, ErrSealingChat
	}
	if err := s.store.UpdateChatData(ctx, chatID, userID, sealed); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to update chat: %w", err)
	}
	dbChat.UpdatedAt = s.now()

	resp := s.mapChatToResponse(dbChat, messages)
	resp.AssistantError = failed
	return resp, nil
}

// titleFrom derives a conversation title from its first message.
func titleFrom(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultChatTitle
	}
	if utf8.RuneCountInString(line) <= maxTitleRunes {
		return line
	}
	runes := []rune(line)
	return strings.TrimSpace(string(runes[:maxTitleRunes])) + "..."
}
