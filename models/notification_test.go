package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNotificationMarkAsRead(t *testing.T) {
	n := Notification{ID: uuid.New(), Title: "Test"}

	if n.Read || n.ReadAt != nil {
		t.Fatal("new notification should start unread")
	}

	n.MarkAsRead()
	if !n.Read {
		t.Error("Read = false after MarkAsRead")
	}
	if n.ReadAt == nil {
		t.Fatal("ReadAt not set")
	}

	// Idempotent: a second call must not bump the timestamp.
	first := *n.ReadAt
	time.Sleep(time.Millisecond)
	n.MarkAsRead()
	if !n.ReadAt.Equal(first) {
		t.Errorf("ReadAt changed on second MarkAsRead: %v -> %v", first, *n.ReadAt)
	}
}

func TestNotificationToDTO(t *testing.T) {
	workID := uuid.New()
	n := Notification{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		WorkID:  workID,
		Title:   "New Work Created",
		Message: `A new work "Bridge Repair" has been created for you`,
	}
	n.MarkAsRead()

	dto := n.ToDTO()
	if dto.ID != n.ID || dto.WorkID != workID {
		t.Error("DTO ids do not match source")
	}
	if dto.Title != n.Title || dto.Message != n.Message {
		t.Error("DTO text does not match source")
	}
	if !dto.Read || dto.ReadAt == nil {
		t.Error("DTO lost read state")
	}
}
