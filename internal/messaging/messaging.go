package messaging

import (
	"strings"

	"github.com/Helbert77/Vigil/internal/domain"
)

// FindOrCreateConversation returns the conversation between current and target.
// When none exists a new one is built with id and created is true; the caller
// is responsible for inserting it at the front of its conversation list.
func FindOrCreateConversation(conversations []domain.Conversation, current, target domain.User, id string) (conv domain.Conversation, created bool, err error) {
	if target.ID == "" {
		return domain.Conversation{}, false, domain.ErrBlankID
	}
	if target.ID == current.ID {
		return domain.Conversation{}, false, domain.ErrSelfConversation
	}

	for _, c := range conversations {
		if c.HasParticipant(target.ID) && c.HasParticipant(current.ID) {
			return c, false, nil
		}
	}

	return domain.Conversation{
		ID:           id,
		Participants: []domain.User{current, target},
		Messages:     []domain.ChatMessage{},
	}, true, nil
}

// SendMessage returns conv with a new message appended. conv itself is not modified.
func SendMessage(conv domain.Conversation, senderID, text, id, timestamp string) (domain.Conversation, error) {
	if strings.TrimSpace(text) == "" {
		return conv, domain.ErrEmptyMessage
	}
	if !conv.HasParticipant(senderID) {
		return conv, domain.ErrNotParticipant
	}

	out := conv.Clone()
	out.Messages = append(out.Messages, domain.ChatMessage{
		ID:        id,
		SenderID:  senderID,
		Text:      text,
		Timestamp: timestamp,
	})
	return out, nil
}

// AvailableRecipients lists followers the current user has no conversation with yet.
func AvailableRecipients(followers []domain.User, conversations []domain.Conversation, currentUserID string) []domain.User {
	taken := make(map[string]struct{})
	for _, c := range conversations {
		for _, p := range c.Participants {
			if p.ID != currentUserID {
				taken[p.ID] = struct{}{}
			}
		}
	}

	out := make([]domain.User, 0, len(followers))
	for _, f := range followers {
		if _, ok := taken[f.ID]; !ok {
			out = append(out, f)
		}
	}
	return out
}
