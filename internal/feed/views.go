package feed

import (
	"slices"
	"strings"
	"time"

	"github.com/Helbert77/Vigil/internal/domain"
	"github.com/Helbert77/Vigil/internal/messaging"
	"github.com/Helbert77/Vigil/internal/poll"
	"github.com/Helbert77/Vigil/internal/view"
)

func clonePosts(posts []domain.Post) []domain.Post {
	out := make([]domain.Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}

func cloneConversations(convs []domain.Conversation) []domain.Conversation {
	out := make([]domain.Conversation, len(convs))
	for i, c := range convs {
		out[i] = c.Clone()
	}
	return out
}

// snapshot copies the posts and the revision they belong to.
func (s *Store) snapshot() ([]domain.Post, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePosts(s.posts), s.revision
}

// ============================================
// Snapshots
// ============================================

// Now is the store's clock.
func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *Store) CurrentUser() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUser
}

// Posts returns every post, most recent first.
func (s *Store) Posts() []domain.Post {
	posts, _ := s.snapshot()
	return posts
}

func (s *Store) Post(id string) (domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.postIndex(id)
	if i < 0 {
		return domain.Post{}, domain.ErrPostNotFound
	}
	return s.posts[i].Clone(), nil
}

func (s *Store) Conversations() []domain.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneConversations(s.conversations)
}

func (s *Store) Conversation(id string) (domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.conversationIndex(id)
	if i < 0 {
		return domain.Conversation{}, domain.ErrConversationNotFound
	}
	return s.conversations[i].Clone(), nil
}

func (s *Store) SavedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.savedIDs)
}

func (s *Store) IsSaved(postID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.savedIDs, postID)
}

func (s *Store) FollowedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.followedIDs)
}

func (s *Store) IsFollowing(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.followedIDs, userID)
}

func (s *Store) IsLiked(postID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.liked[postID]
}

func (s *Store) MutedWords() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.mutedWords)
}

func (s *Store) Notifications() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notifications)
}

func (s *Store) Communities() []domain.Community {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.communities)
}

func (s *Store) Community(id string) (domain.Community, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.communities {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Community{}, domain.ErrCommunityNotFound
}

func (s *Store) TrendingTopics() []domain.TrendingTopic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.trending)
}

// UsersToFollow lists suggested users not yet followed.
func (s *Store) UsersToFollow() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.DeleteFunc(slices.Clone(s.usersToFollow), func(u domain.User) bool {
		return slices.Contains(s.followedIDs, u.ID)
	})
}

func (s *Store) Followers() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.followers)
}

func (s *Store) userLocked(id string) (domain.User, bool) {
	if id == s.currentUser.ID {
		return s.currentUser, true
	}
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s *Store) User(id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.userLocked(id)
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

// AvailableRecipients lists followers without a conversation yet, filtered by query.
func (s *Store) AvailableRecipients(query string) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.FilterUsers(messaging.AvailableRecipients(s.followers, s.conversations, s.currentUser.ID), query)
}

// FilterFollowers is the share-to-DM picker list.
func (s *Store) FilterFollowers(query string) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.FilterUsers(s.followers, query)
}

// ============================================
// Derived Views
// ============================================

// HomeFeed is the timeline with muted words hidden, optionally narrowed to tag.
func (s *Store) HomeFeed(tag string) []domain.Post {
	posts := view.WithoutMuted(s.Posts(), s.MutedWords())
	if strings.TrimSpace(tag) != "" {
		posts = view.FilterByTag(posts, tag)
	}
	return posts
}

// Search matches posts and users against query. Results for a revision are
// memoized; callers get their own copy.
func (s *Store) Search(query string) view.SearchResults {
	s.mu.RLock()
	posts, users, rev := clonePosts(s.posts), slices.Clone(s.users), s.revision
	s.mu.RUnlock()

	res := s.memo.Search(rev, query, func() view.SearchResults {
		return view.Search(posts, users, query)
	})
	return view.SearchResults{Posts: clonePosts(res.Posts), Users: slices.Clone(res.Users)}
}

func (s *Store) Topic(tag string) view.TopicStats {
	posts, rev := s.snapshot()
	stats := s.memo.Topic(rev, tag, func() view.TopicStats {
		return view.Topic(posts, tag)
	})
	stats.Influential = slices.Clone(stats.Influential)
	stats.Gallery = slices.Clone(stats.Gallery)
	stats.Posts = clonePosts(stats.Posts)
	return stats
}

func (s *Store) CommunityPosts(communityID string) ([]domain.Post, error) {
	c, err := s.Community(communityID)
	if err != nil {
		return nil, err
	}
	return view.CommunityPosts(s.Posts(), c), nil
}

// ProfilePosts lists the user's posts, or only those with media when mediaOnly is set.
func (s *Store) ProfilePosts(userID string, mediaOnly bool) []domain.Post {
	posts := view.ProfilePosts(s.Posts(), userID)
	if mediaOnly {
		return view.MediaPosts(posts)
	}
	return posts
}

func (s *Store) SavedPosts() []domain.Post {
	return view.SavedPosts(s.Posts(), s.SavedIDs())
}

// PollView is what a poll card needs to render.
type PollView struct {
	Poll        domain.Poll    `json:"poll"`
	Results     []int          `json:"results"`
	Countdown   poll.Countdown `json:"countdown"`
	Remaining   string         `json:"remaining"`
	Voted       bool           `json:"voted"`
	Choice      int            `json:"choice"`
	ShowResults bool           `json:"show_results"`
}

func (s *Store) PollView(postID string) (PollView, error) {
	post, err := s.Post(postID)
	if err != nil {
		return PollView{}, err
	}
	if post.Poll == nil {
		return PollView{}, domain.ErrNoPoll
	}
	now := s.now()
	choice, voted := s.ballots.Choice(postID)
	if !voted {
		choice = -1
	}
	c := poll.Remaining(*post.Poll, now)
	return PollView{
		Poll:        *post.Poll,
		Results:     poll.Results(*post.Poll),
		Countdown:   c,
		Remaining:   c.String(),
		Voted:       voted,
		Choice:      choice,
		ShowResults: poll.ShowResults(*post.Poll, voted, now),
	}, nil
}

// ============================================
// Navigation
// ============================================

// Resolve checks a navigation request against current state and falls back
// to the page the target would have been reached from.
func (s *Store) Resolve(nav domain.Navigation) domain.Navigation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch nav.Page {
	case domain.PagePostDetail:
		if s.postIndex(nav.ID) < 0 {
			return domain.Navigation{Page: domain.PageNotifications}
		}
	case domain.PageCommunityDetail:
		if !slices.ContainsFunc(s.communities, func(c domain.Community) bool { return c.ID == nav.ID }) {
			return domain.Navigation{Page: domain.PageCommunities}
		}
	case domain.PageProfile:
		if nav.ID == "" {
			return domain.NavigateToProfile(s.currentUser.ID)
		}
		if _, ok := s.userLocked(nav.ID); !ok {
			return domain.Navigation{Page: domain.PageHome}
		}
	case domain.PageTopicDetail:
		if strings.TrimSpace(nav.ID) == "" {
			return domain.Navigation{Page: domain.PageHome}
		}
	}
	return nav
}
