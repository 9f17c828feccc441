package messaging

import (
	"errors"
	"testing"

	"github.com/Helbert77/Vigil/internal/domain"
)

var (
	me     = domain.User{ID: "u1", Name: "Alex Cipher"}
	evelyn = domain.User{ID: "u2", Name: "Dr. Evelyn Reed"}
	agent  = domain.User{ID: "u4", Name: "Agent K"}
)

func TestFindOrCreateReturnsExisting(t *testing.T) {
	existing := []domain.Conversation{{ID: "c1", Participants: []domain.User{me, evelyn}}}

	conv, created, err := FindOrCreateConversation(existing, me, evelyn, "new-id")
	if err != nil {
		t.Fatalf("FindOrCreateConversation: %v", err)
	}
	if created || conv.ID != "c1" {
		t.Errorf("got %s created=%v, want existing c1", conv.ID, created)
	}
}

func TestFindOrCreateTwiceNeverDuplicates(t *testing.T) {
	var conversations []domain.Conversation

	first, created, err := FindOrCreateConversation(conversations, me, agent, "c-new")
	if err != nil || !created {
		t.Fatalf("first call: created=%v err=%v", created, err)
	}
	if len(first.Participants) != 2 || first.Participants[0].ID != "u1" || first.Participants[1].ID != "u4" {
		t.Errorf("participants = %+v", first.Participants)
	}
	if first.Messages == nil || len(first.Messages) != 0 {
		t.Errorf("new conversation should start with an empty message list")
	}
	conversations = append([]domain.Conversation{first}, conversations...)

	second, created, err := FindOrCreateConversation(conversations, me, agent, "c-other")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if created || second.ID != first.ID {
		t.Errorf("second call created=%v id=%s, want %s", created, second.ID, first.ID)
	}
}

func TestFindOrCreateRejectsSelf(t *testing.T) {
	if _, _, err := FindOrCreateConversation(nil, me, me, "x"); !errors.Is(err, domain.ErrSelfConversation) {
		t.Errorf("expected ErrSelfConversation, got %v", err)
	}
}

func TestSendMessage(t *testing.T) {
	conv := domain.Conversation{ID: "c1", Participants: []domain.User{me, evelyn}}

	out, err := SendMessage(conv, "u1", "hello", "m1", "Just now")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if len(conv.Messages) != 0 {
		t.Errorf("input conversation was modified")
	}
	if len(out.Messages) != 1 || out.Messages[0].Text != "hello" || out.Messages[0].SenderID != "u1" {
		t.Errorf("messages = %+v", out.Messages)
	}

	out, err = SendMessage(out, "u2", "hi back", "m2", "Just now")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if out.Messages[1].ID != "m2" {
		t.Errorf("messages out of order: %+v", out.Messages)
	}
}

func TestSendMessageValidation(t *testing.T) {
	conv := domain.Conversation{ID: "c1", Participants: []domain.User{me, evelyn}}

	out, err := SendMessage(conv, "u1", "   ", "m1", "Just now")
	if !errors.Is(err, domain.ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}
	if len(out.Messages) != 0 {
		t.Errorf("blank message appended")
	}

	if _, err := SendMessage(conv, "u9", "hello", "m1", "Just now"); !errors.Is(err, domain.ErrNotParticipant) {
		t.Errorf("expected ErrNotParticipant, got %v", err)
	}
}

func TestAvailableRecipients(t *testing.T) {
	conversations := []domain.Conversation{{ID: "c1", Participants: []domain.User{me, evelyn}}}
	got := AvailableRecipients([]domain.User{evelyn, agent}, conversations, "u1")
	if len(got) != 1 || got[0].ID != "u4" {
		t.Errorf("AvailableRecipients = %+v", got)
	}
}
