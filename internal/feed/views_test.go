package feed

import (
	"errors"
	"testing"

	"github.com/Helbert77/Vigil/internal/domain"
)

func TestSearchSeesNewPosts(t *testing.T) {
	s, _, _ := newTestStore(t)

	res := s.Search("ice")
	before := len(res.Posts)

	s.CreatePost(domain.PostDraft{Text: "The ice wall is real"}, domain.PageHome)
	res = s.Search("ICE")
	if len(res.Posts) != before+1 || res.Posts[0].Text != "The ice wall is real" {
		t.Errorf("search after create = %d posts", len(res.Posts))
	}

	if res := s.Search(""); len(res.Posts) != 0 || len(res.Users) != 0 {
		t.Errorf("empty query returned results")
	}

	res = s.Search("oracle")
	if len(res.Users) != 1 || res.Users[0].ID != "u5" {
		t.Errorf("user results = %+v", res.Users)
	}
}

func TestDerivedViewsAreCopies(t *testing.T) {
	s, _, _ := newTestStore(t)

	res := s.Search("ice")
	if len(res.Posts) == 0 {
		t.Fatalf("no search results")
	}
	res.Posts[0].Text = "edited"
	if again := s.Search("ice"); again.Posts[0].Text == "edited" {
		t.Errorf("cached search results were shared")
	}

	stats := s.Topic("subterraneancivilizations")
	stats.Posts[0].Likes = -1
	stats.Gallery[0] = "edited"
	again := s.Topic("subterraneancivilizations")
	if again.Posts[0].Likes == -1 || again.Gallery[0] == "edited" {
		t.Errorf("cached topic stats were shared")
	}
}

func TestTopic(t *testing.T) {
	s, _, _ := newTestStore(t)

	stats := s.Topic("subterraneancivilizations")
	if stats.PostCount != 2 {
		t.Errorf("PostCount = %d", stats.PostCount)
	}
	if len(stats.Influential) != 1 || stats.Influential[0].User.ID != "u2" || stats.Influential[0].PostCount != 2 {
		t.Errorf("Influential = %+v", stats.Influential)
	}
	if len(stats.Gallery) != 1 {
		t.Errorf("Gallery = %v", stats.Gallery)
	}

	s.CreatePost(domain.PostDraft{Text: "#SubterraneanCivilizations confirmed", ImageURL: "img"}, domain.PageHome)
	if stats := s.Topic("SubterraneanCivilizations"); stats.PostCount != 3 || len(stats.Gallery) != 2 {
		t.Errorf("stale topic stats: %+v", stats)
	}
}

func TestCommunityPosts(t *testing.T) {
	s, _, _ := newTestStore(t)

	posts, err := s.CommunityPosts("com3")
	if err != nil {
		t.Fatalf("CommunityPosts: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "p4" {
		t.Errorf("posts = %v", posts)
	}
	if _, err := s.CommunityPosts("com9"); !errors.Is(err, domain.ErrCommunityNotFound) {
		t.Errorf("expected ErrCommunityNotFound, got %v", err)
	}
}

func TestProfilePosts(t *testing.T) {
	s, _, _ := newTestStore(t)

	all := s.ProfilePosts("u2", false)
	if len(all) != 2 || all[0].ID != "p1" || all[1].ID != "p4" {
		t.Errorf("ProfilePosts = %v", all)
	}
	media := s.ProfilePosts("u2", true)
	if len(media) != 1 || media[0].ID != "p1" {
		t.Errorf("media = %v", media)
	}
}

func TestAvailableRecipients(t *testing.T) {
	s, _, _ := newTestStore(t)

	got := s.AvailableRecipients("")
	if len(got) != 4 {
		t.Fatalf("AvailableRecipients = %+v", got)
	}
	for _, u := range got {
		if u.ID == "u2" || u.ID == "u3" {
			t.Errorf("%s already has a conversation", u.ID)
		}
	}

	if got := s.AvailableRecipients("night"); len(got) != 1 || got[0].ID != "u7" {
		t.Errorf("filtered = %+v", got)
	}

	s.StartConversation("u7")
	if got := s.AvailableRecipients("night"); len(got) != 0 {
		t.Errorf("u7 still available after starting a conversation")
	}

	if got := s.FilterFollowers("SHADOW"); len(got) != 1 || got[0].ID != "u3" {
		t.Errorf("FilterFollowers = %+v", got)
	}
}

func TestResolve(t *testing.T) {
	s, _, _ := newTestStore(t)

	tests := []struct {
		in   domain.Navigation
		want domain.Navigation
	}{
		{domain.NavigateToPost("p1"), domain.NavigateToPost("p1")},
		{domain.NavigateToPost("gone"), domain.Navigation{Page: domain.PageNotifications}},
		{domain.NavigateToCommunity("com2"), domain.NavigateToCommunity("com2")},
		{domain.NavigateToCommunity("com9"), domain.Navigation{Page: domain.PageCommunities}},
		{domain.NavigateToProfile("u5"), domain.NavigateToProfile("u5")},
		{domain.NavigateToProfile("u99"), domain.Navigation{Page: domain.PageHome}},
		{domain.Navigation{Page: domain.PageProfile}, domain.NavigateToProfile("u1")},
		{domain.NavigateToTopic("MandelaEffect"), domain.NavigateToTopic("MandelaEffect")},
		{domain.NavigateToTopic(" "), domain.Navigation{Page: domain.PageHome}},
		{domain.Navigation{Page: domain.PageSettings}, domain.Navigation{Page: domain.PageSettings}},
	}

	for _, tt := range tests {
		if got := s.Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestSeededLookups(t *testing.T) {
	s, _, _ := newTestStore(t)

	if n := s.Notifications(); len(n) != 4 || n[2].Navigable() {
		t.Errorf("notifications = %+v", n)
	}
	if len(s.Communities()) != 4 || len(s.TrendingTopics()) != 4 {
		t.Errorf("communities or trending missing")
	}
	if u, err := s.User("u3"); err != nil || u.Username != "the_watcher" {
		t.Errorf("User = %+v, %v", u, err)
	}
	if _, err := s.User("u99"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := s.Conversation("c9"); !errors.Is(err, domain.ErrConversationNotFound) {
		t.Errorf("expected ErrConversationNotFound, got %v", err)
	}
}
