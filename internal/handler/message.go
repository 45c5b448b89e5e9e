package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
	"github.com/jarthurreyes30-tech/charityhub-api/internal/repository"
)

// MessageHandler covers direct messages between users. Conversations are a
// view over the messages table, grouped by counterpart.
type MessageHandler struct {
	Messages *repository.MessageRepo
	Users    *repository.UserRepo
}

func NewMessageHandler(m *repository.MessageRepo, u *repository.UserRepo) *MessageHandler {
	return &MessageHandler{Messages: m, Users: u}
}

type sendMessageReq struct {
	RecipientID uint64 `json:"recipient_id"`
	Body        string `json:"body"`
}

type messagePart struct {
	ID        uint64     `json:"id"`
	SenderID  uint64     `json:"sender_id"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type conversationPart struct {
	UserID      uint64      `json:"user_id"`
	LastMessage messagePart `json:"last_message"`
	UnreadCount int         `json:"unread_count"`
}

// groupConversations folds a newest-first message list into one entry per
// counterpart. The first message seen for a counterpart is its latest;
// unread counts only messages addressed to viewerID.
func groupConversations(viewerID uint64, msgs []model.Message) []conversationPart {
	out := make([]conversationPart, 0)
	index := make(map[uint64]int)
	for _, m := range msgs {
		other := m.SenderID
		if other == viewerID {
			other = m.RecipientID
		}
		i, seen := index[other]
		if !seen {
			index[other] = len(out)
			i = len(out)
			out = append(out, conversationPart{
				UserID:      other,
				LastMessage: messagePart{ID: m.ID, SenderID: m.SenderID, Body: m.Body, ReadAt: m.ReadAt, CreatedAt: m.CreatedAt},
			})
		}
		if m.RecipientID == viewerID && m.ReadAt == nil {
			out[i].UnreadCount++
		}
	}
	return out
}

// Send delivers a message to another user.
func (h *MessageHandler) Send(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req sendMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Body = strings.TrimSpace(req.Body)
	if req.RecipientID == 0 || req.Body == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "recipient_id and body required"})
	}
	if req.RecipientID == uid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot message yourself"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, req.RecipientID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recipient not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	id, err := h.Messages.Create(ctx, uid, req.RecipientID, req.Body)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "send failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Conversations lists the caller's conversations, one entry per counterpart,
// ordered by most recent message.
func (h *MessageHandler) Conversations(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	msgs, err := h.Messages.ListInvolving(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"conversations": groupConversations(uid, msgs)})
}

// Thread returns the full exchange with one user, oldest first, and marks
// the counterpart's messages as read.
func (h *MessageHandler) Thread(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	otherID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	msgs, err := h.Messages.Thread(ctx, uid, otherID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Messages.MarkRead(ctx, uid, otherID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]messagePart, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messagePart{ID: m.ID, SenderID: m.SenderID, Body: m.Body, ReadAt: m.ReadAt, CreatedAt: m.CreatedAt})
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": out})
}
