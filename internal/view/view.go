// Package view derives filtered and aggregated slices of the feed.
//
// Every function here is pure: it reads its arguments, never mutates them and
// returns freshly allocated slices, so callers may recompute on every render.
package view

import (
	"sort"
	"strings"

	"github.com/Helbert77/Vigil/internal/domain"
)

const (
	InfluentialLimit = 3
	GalleryLimit     = 6
)

func hasTag(text, tag string) bool {
	return strings.Contains(strings.ToLower(text), "#"+strings.ToLower(tag))
}

// FilterByTag keeps posts whose text contains #tag, ignoring case.
func FilterByTag(posts []domain.Post, tag string) []domain.Post {
	out := make([]domain.Post, 0)
	for _, p := range posts {
		if hasTag(p.Text, tag) {
			out = append(out, p)
		}
	}
	return out
}

// CommunityPosts is FilterByTag on the community's tag.
func CommunityPosts(posts []domain.Post, c domain.Community) []domain.Post {
	return FilterByTag(posts, c.Tag)
}

type SearchResults struct {
	Posts []domain.Post `json:"posts"`
	Users []domain.User `json:"users"`
}

// MatchesUser reports whether q (already lower-cased) is in the user's name or handle.
func MatchesUser(u domain.User, q string) bool {
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Username), q)
}

// Search matches query against post text and author, and against users.
// An empty query matches nothing.
func Search(posts []domain.Post, users []domain.User, query string) SearchResults {
	res := SearchResults{Posts: make([]domain.Post, 0), Users: make([]domain.User, 0)}
	q := strings.ToLower(query)
	if q == "" {
		return res
	}
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Text), q) || MatchesUser(p.User, q) {
			res.Posts = append(res.Posts, p)
		}
	}
	for _, u := range users {
		if MatchesUser(u, q) {
			res.Users = append(res.Users, u)
		}
	}
	return res
}

// FilterUsers is the follower picker filter. Unlike Search, a blank query keeps everyone.
func FilterUsers(users []domain.User, query string) []domain.User {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if q == "" || MatchesUser(u, q) {
			out = append(out, u)
		}
	}
	return out
}

type InfluentialUser struct {
	User      domain.User `json:"user"`
	PostCount int         `json:"post_count"`
}

type TopicStats struct {
	Tag         string            `json:"tag"`
	PostCount   int               `json:"post_count"`
	Influential []InfluentialUser `json:"influential"`
	Gallery     []string          `json:"gallery"`
	Posts       []domain.Post     `json:"posts"`
}

// Topic aggregates the posts tagged with tag.
func Topic(posts []domain.Post, tag string) TopicStats {
	tagged := FilterByTag(posts, tag)

	var authors []InfluentialUser
	index := make(map[string]int)
	gallery := make([]string, 0)
	for _, p := range tagged {
		if i, ok := index[p.User.ID]; ok {
			authors[i].PostCount++
		} else {
			index[p.User.ID] = len(authors)
			authors = append(authors, InfluentialUser{User: p.User, PostCount: 1})
		}
		if p.ImageURL != "" && len(gallery) < GalleryLimit {
			gallery = append(gallery, p.ImageURL)
		}
	}

	sort.SliceStable(authors, func(i, j int) bool {
		return authors[i].PostCount > authors[j].PostCount
	})
	if len(authors) > InfluentialLimit {
		authors = authors[:InfluentialLimit]
	}
	if authors == nil {
		authors = make([]InfluentialUser, 0)
	}

	return TopicStats{
		Tag:         tag,
		PostCount:   len(tagged),
		Influential: authors,
		Gallery:     gallery,
		Posts:       tagged,
	}
}

// ProfilePosts keeps the posts authored by userID.
func ProfilePosts(posts []domain.Post, userID string) []domain.Post {
	out := make([]domain.Post, 0)
	for _, p := range posts {
		if p.User.ID == userID {
			out = append(out, p)
		}
	}
	return out
}

// MediaPosts keeps posts with an image or a video.
func MediaPosts(posts []domain.Post) []domain.Post {
	out := make([]domain.Post, 0)
	for _, p := range posts {
		if p.HasMedia() {
			out = append(out, p)
		}
	}
	return out
}

// SavedPosts keeps the posts in ids, in feed order.
func SavedPosts(posts []domain.Post, ids []string) []domain.Post {
	saved := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		saved[id] = struct{}{}
	}
	out := make([]domain.Post, 0, len(ids))
	for _, p := range posts {
		if _, ok := saved[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// WithoutMuted drops posts whose text contains any muted word, ignoring case.
func WithoutMuted(posts []domain.Post, muted []string) []domain.Post {
	if len(muted) == 0 {
		return posts
	}
	out := make([]domain.Post, 0, len(posts))
outer:
	for _, p := range posts {
		text := strings.ToLower(p.Text)
		for _, w := range muted {
			if strings.Contains(text, strings.ToLower(w)) {
				continue outer
			}
		}
		out = append(out, p)
	}
	return out
}
