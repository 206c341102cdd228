package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"medgpt-backend/internal/auth"
	"medgpt-backend/internal/models"
	"medgpt-backend/internal/services"
	"medgpt-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ChatService manages stored assistant conversations.
type ChatService interface {
	CreateChat(ctx context.Context, userID uuid.UUID, req models.CreateChatRequest) (*models.ChatResponse, error)
	GetChat(ctx context.Context, userID, chatID uuid.UUID) (*models.ChatResponse, error)
	ListChats(ctx context.Context, userID uuid.UUID, limit, offset int) (*models.ListChatsResponse, error)
	DeleteChat(ctx context.Context, userID, chatID uuid.UUID) error
	SendMessage(ctx context.Context, userID, chatID uuid.UUID, message string) (*models.ChatResponse, error)
}

// ChatHandlers handles HTTP requests related to chats.
type ChatHandlers struct {
	chatService ChatService
}

// NewChatHandlers creates a new ChatHandlers instance.
func NewChatHandlers(chatService ChatService) *ChatHandlers {
	return &ChatHandlers{
		chatService: chatService,
	}
}

func respondChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrChatNotFound):
		httputil.RespondError(w, http.StatusNotFound, "Chat not found")
	case errors.Is(err, services.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("ERROR [ChatHandlers] %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to process chat request")
	}
}

// chatRequestIDs extracts the caller and the {chatID} path parameter.
func chatRequestIDs(w http.ResponseWriter, r *http.Request) (userID, chatID uuid.UUID, ok bool) {
	userID, ok = auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	chatID, err := uuid.Parse(chi.URLParam(r, "chatID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid chat ID")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, chatID, true
}

// HandleCreateChat handles POST /v1/chats. The body is optional.
func (h *ChatHandlers) HandleCreateChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CreateChatRequest
	if err := decodeOptionalAndValidate(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	chat, err := h.chatService.CreateChat(r.Context(), userID, req)
	if err != nil {
		respondChatError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, chat)
}

// HandleListChats handles GET /v1/chats?limit=&offset=.
func (h *ChatHandlers) HandleListChats(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit, offset := 0, 0
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid offset parameter")
			return
		}
		offset = n
	}

	chats, err := h.chatService.ListChats(r.Context(), userID, limit, offset)
	if err != nil {
		respondChatError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, chats)
}

// HandleGetChatByID handles requests to get a chat by ID.
func (h *ChatHandlers) HandleGetChatByID(w http.ResponseWriter, r *http.Request) {
	userID, chatID, ok := chatRequestIDs(w, r)
	if !ok {
		return
	}
	chat, err := h.chatService.GetChat(r.Context(), userID, chatID)
	if err != nil {
		respondChatError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, chat)
}

// HandleDeleteChat handles DELETE /v1/chats/{chatID}.
func (h *ChatHandlers) HandleDeleteChat(w http.ResponseWriter, r *http.Request) {
	userID, chatID, ok := chatRequestIDs(w, r)
	if !ok {
		return
	}
	if err := h.chatService.DeleteChat(r.Context(), userID, chatID); err != nil {
		respondChatError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSendMessage adds a user message and returns the updated chat
// with the assistant's reply.
func (h *ChatHandlers) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	userID, chatID, ok := chatRequestIDs(w, r)
	if !ok {
		return
	}
	var req models.SendMessageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	chat, err := h.chatService.SendMessage(r.Context(), userID, chatID, req.Message)
	if err != nil {
		respondChatError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, chat)
}
