package domain

import (
	"errors"
	"testing"
	"time"
)

func TestPostHasContent(t *testing.T) {
	cases := []struct {
		name string
		post Post
		want bool
	}{
		{"blank", Post{Text: "   "}, false},
		{"text", Post{Text: "hi"}, true},
		{"image", Post{ImageURL: "img"}, true},
		{"video", Post{VideoURL: "vid"}, true},
		{"poll", Post{Poll: &Poll{}}, true},
	}
	for _, c := range cases {
		if got := c.post.HasContent(); got != c.want {
			t.Errorf("%s: HasContent() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestPostCloneDoesNotShareStorage(t *testing.T) {
	p := Post{
		Comments: []Comment{{ID: "c1"}},
		Poll:     &Poll{Options: []PollOption{{Text: "A"}, {Text: "B"}}},
	}
	c := p.Clone()
	c.Comments[0].ID = "changed"
	c.Poll.Options[0].Votes = 5

	if p.Comments[0].ID != "c1" {
		t.Errorf("comment mutated through clone")
	}
	if p.Poll.Options[0].Votes != 0 {
		t.Errorf("poll mutated through clone")
	}
}

func TestPollActive(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	p := Poll{EndDate: now}
	if p.Active(now) {
		t.Errorf("poll ending now must be inactive")
	}
	if !p.Active(now.Add(-time.Second)) {
		t.Errorf("poll should be active before its end")
	}
}

func TestNotificationCategory(t *testing.T) {
	cases := map[string]NotificationCategory{
		"liked your post about antarctic structures.": NotificationLike,
		`commented: "The signals are getting stronger."`: NotificationComment,
		"started following you.":                        NotificationFollow,
		"mentioned you":                                 NotificationOther,
	}
	for text, want := range cases {
		if got := (Notification{Text: text}).Category(); got != want {
			t.Errorf("Category(%q) = %s, want %s", text, got, want)
		}
	}
}

func TestNotificationNavigable(t *testing.T) {
	if (Notification{}).Navigable() {
		t.Errorf("notification without post must not be navigable")
	}
	if !(Notification{PostID: "p1"}).Navigable() {
		t.Errorf("notification with post should be navigable")
	}
}

func TestConversationPartner(t *testing.T) {
	c := Conversation{Participants: []User{{ID: "u1"}, {ID: "u2"}}}
	partner, ok := c.Partner("u1")
	if !ok || partner.ID != "u2" {
		t.Fatalf("Partner(u1) = %v, %v", partner, ok)
	}
	if !c.HasParticipant("u2") || c.HasParticipant("u3") {
		t.Errorf("HasParticipant mismatch")
	}
}

func TestErrorCategories(t *testing.T) {
	if !errors.Is(ErrEmptyPost, ErrValidation) {
		t.Errorf("ErrEmptyPost should be a validation error")
	}
	if !errors.Is(ErrPostNotFound, ErrNotFound) {
		t.Errorf("ErrPostNotFound should be a not found error")
	}
	if errors.Is(ErrPostNotFound, ErrValidation) {
		t.Errorf("ErrPostNotFound must not be a validation error")
	}
}
