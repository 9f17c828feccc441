package seed

import "testing"

func TestLoadHasUniqueIDs(t *testing.T) {
	d := Load()
	seen := map[string]bool{}
	for _, u := range d.Users {
		if seen[u.ID] {
			t.Errorf("duplicate user %s", u.ID)
		}
		seen[u.ID] = true
	}
	for _, p := range d.Posts {
		if !p.HasContent() {
			t.Errorf("post %s has no content", p.ID)
		}
	}
	if d.CurrentUser.ID != "u1" {
		t.Errorf("current user = %s", d.CurrentUser.ID)
	}
}

func TestLoadReturnsFreshCopies(t *testing.T) {
	a := Load()
	a.Posts[0].Likes = -1
	a.Conversations[0].Messages[0].Text = "changed"

	b := Load()
	if b.Posts[0].Likes == -1 || b.Conversations[0].Messages[0].Text == "changed" {
		t.Error("Load shares state between calls")
	}
}
