package handler

import (
	"testing"
	"time"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/model"
)

func msg(id, sender, recipient uint64, at time.Time, read bool) model.Message {
	m := model.Message{ID: id, SenderID: sender, RecipientID: recipient, Body: "hi", CreatedAt: at}
	if read {
		t := at.Add(time.Minute)
		m.ReadAt = &t
	}
	return m
}

func TestGroupConversations(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Newest first, the way the repository returns them. Viewer is user 1,
	// talking to users 2 and 3.
	msgs := []model.Message{
		msg(5, 2, 1, base.Add(4*time.Minute), false), // latest with 2, unread
		msg(4, 1, 3, base.Add(3*time.Minute), false), // latest with 3, sent by viewer
		msg(3, 2, 1, base.Add(2*time.Minute), false), // older unread from 2
		msg(2, 3, 1, base.Add(1*time.Minute), true),  // read, no unread count
		msg(1, 1, 2, base, false),                    // viewer's own, never unread
	}

	got := groupConversations(1, msgs)
	if len(got) != 2 {
		t.Fatalf("conversations = %d, want 2", len(got))
	}

	// Order follows the most recent message.
	if got[0].UserID != 2 || got[1].UserID != 3 {
		t.Fatalf("order = [%d %d], want [2 3]", got[0].UserID, got[1].UserID)
	}
	if got[0].LastMessage.ID != 5 {
		t.Errorf("latest with user 2 = %d, want 5", got[0].LastMessage.ID)
	}
	if got[0].UnreadCount != 2 {
		t.Errorf("unread with user 2 = %d, want 2", got[0].UnreadCount)
	}
	if got[1].LastMessage.ID != 4 {
		t.Errorf("latest with user 3 = %d, want 4", got[1].LastMessage.ID)
	}
	if got[1].UnreadCount != 0 {
		t.Errorf("unread with user 3 = %d, want 0", got[1].UnreadCount)
	}
}

func TestGroupConversationsEmpty(t *testing.T) {
	if got := groupConversations(1, nil); len(got) != 0 {
		t.Fatalf("conversations = %d, want 0", len(got))
	}
}
