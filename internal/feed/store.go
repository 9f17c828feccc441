// Package feed owns the mutable feed state and every mutation applied to it.
package feed

import (
	"context"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Helbert77/Vigil/internal/domain"
	"github.com/Helbert77/Vigil/internal/messaging"
	"github.com/Helbert77/Vigil/internal/persistence"
	"github.com/Helbert77/Vigil/internal/poll"
	"github.com/Helbert77/Vigil/internal/seed"
	"github.com/Helbert77/Vigil/internal/share"
	"github.com/Helbert77/Vigil/internal/view"
	"github.com/google/uuid"
)

// JustNow is the display timestamp stamped on everything created in the session.
const JustNow = "Just now"

type Options struct {
	// Saved persists the saved-post ids. Nil keeps them in memory only.
	Saved    *persistence.SavedPosts
	Now      func() time.Time
	NewID    func() string
	MemoSize int
}

// Store is the single writer for posts, conversations, the current user and
// the saved/followed sets. Readers get copies.
type Store struct {
	mu       sync.RWMutex
	revision uint64

	now     func() time.Time
	newID   func() string
	saved   *persistence.SavedPosts
	ballots *poll.Ballots
	memo    *view.Memo

	currentUser   domain.User
	posts         []domain.Post
	conversations []domain.Conversation
	users         []domain.User
	followers     []domain.User
	usersToFollow []domain.User
	notifications []domain.Notification
	communities   []domain.Community
	trending      []domain.TrendingTopic

	savedIDs    []string
	followedIDs []string
	liked       map[string]bool
	mutedWords  []string
}

func newV7() string {
	id, err := uuid.NewV7()
	if err != nil {
		log.Printf("failed to generate uuid: %v", err)
		return uuid.NewString()
	}
	return id.String()
}

// NewStore seeds a store from data and loads the saved-post ids.
func NewStore(ctx context.Context, data seed.Data, opts Options) *Store {
	s := &Store{
		now:           opts.Now,
		newID:         opts.NewID,
		saved:         opts.Saved,
		ballots:       poll.NewBallots(),
		memo:          view.NewMemo(opts.MemoSize),
		currentUser:   data.CurrentUser,
		posts:         data.Posts,
		conversations: data.Conversations,
		users:         data.Users,
		followers:     data.Followers,
		usersToFollow: data.UsersToFollow,
		notifications: data.Notifications,
		communities:   data.Communities,
		trending:      data.TrendingTopics,
		savedIDs:      []string{},
		followedIDs:   []string{},
		liked:         make(map[string]bool),
		mutedWords:    []string{},
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = newV7
	}
	if s.saved != nil {
		s.savedIDs = s.saved.Load(ctx)
	}
	return s
}

func (s *Store) bump() {
	s.revision++
}

func (s *Store) postIndex(id string) int {
	return slices.IndexFunc(s.posts, func(p domain.Post) bool { return p.ID == id })
}

func (s *Store) conversationIndex(id string) int {
	return slices.IndexFunc(s.conversations, func(c domain.Conversation) bool { return c.ID == id })
}

// ============================================
// Posts
// ============================================

// CreatePost prepends a post authored by the current user. When from is not
// the home page the returned navigation asks the caller to go there.
func (s *Store) CreatePost(draft domain.PostDraft, from domain.Page) (domain.Post, *domain.Navigation, error) {
	post := domain.Post{
		Text:      strings.TrimSpace(draft.Text),
		ImageURL:  strings.TrimSpace(draft.ImageURL),
		VideoURL:  strings.TrimSpace(draft.VideoURL),
		Timestamp: JustNow,
		Comments:  []domain.Comment{},
	}
	if draft.Poll != nil {
		p, err := poll.Normalize(*draft.Poll)
		if err != nil {
			return domain.Post{}, nil, err
		}
		post.Poll = &p
	}
	if !post.HasContent() {
		return domain.Post{}, nil, domain.ErrEmptyPost
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = s.newID()
	post.User = s.currentUser
	s.posts = append([]domain.Post{post}, s.posts...)
	s.bump()

	var nav *domain.Navigation
	if from != domain.PageHome {
		nav = &domain.Navigation{Page: domain.PageHome}
	}
	return post.Clone(), nav, nil
}

func (s *Store) updatePostLocked(id string, patch domain.PostPatch) (domain.Post, error) {
	i := s.postIndex(id)
	if i < 0 {
		return domain.Post{}, domain.ErrPostNotFound
	}
	if (patch.Likes != nil && *patch.Likes < 0) || (patch.Shares != nil && *patch.Shares < 0) {
		return domain.Post{}, domain.ErrNegativeCount
	}

	p := s.posts[i].Clone()
	if patch.Likes != nil {
		p.Likes = *patch.Likes
	}
	if patch.Shares != nil {
		p.Shares = *patch.Shares
	}
	if patch.Comments != nil {
		p.Comments = slices.Clone(*patch.Comments)
		if p.Comments == nil {
			p.Comments = []domain.Comment{}
		}
	}
	if patch.Poll != nil {
		var updated domain.Poll
		var err error
		if p.Poll == nil {
			updated, err = poll.Normalize(*patch.Poll)
		} else {
			updated, err = patch.Poll.Clone(), poll.CheckUpdate(*p.Poll, *patch.Poll)
		}
		if err != nil {
			return domain.Post{}, err
		}
		p.Poll = &updated
	}
	s.posts[i] = p
	s.bump()
	return p.Clone(), nil
}

// UpdatePost merges the non-nil fields of patch into the post.
func (s *Store) UpdatePost(id string, patch domain.PostPatch) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatePostLocked(id, patch)
}

// AddComment appends a comment by the current user.
func (s *Store) AddComment(postID, text string) (domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.postIndex(postID)
	if i < 0 {
		return domain.Comment{}, domain.ErrPostNotFound
	}
	c := domain.Comment{
		ID:        s.newID(),
		User:      s.currentUser,
		Text:      text,
		Timestamp: JustNow,
	}
	comments := append(slices.Clone(s.posts[i].Comments), c)
	if _, err := s.updatePostLocked(postID, domain.PostPatch{Comments: &comments}); err != nil {
		return domain.Comment{}, err
	}
	return c, nil
}

// ToggleLike likes or unlikes the post for this session.
func (s *Store) ToggleLike(postID string) (bool, domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.postIndex(postID)
	if i < 0 {
		return false, domain.Post{}, domain.ErrPostNotFound
	}
	liked := !s.liked[postID]
	likes := s.posts[i].Likes + 1
	if !liked {
		likes = max(s.posts[i].Likes-1, 0)
	}
	p, err := s.updatePostLocked(postID, domain.PostPatch{Likes: &likes})
	if err != nil {
		return false, domain.Post{}, err
	}
	if liked {
		s.liked[postID] = true
	} else {
		delete(s.liked, postID)
	}
	return liked, p, nil
}

// Vote records the viewer's vote on the post's poll. A viewer votes once per
// store lifetime; the record is not persisted.
func (s *Store) Vote(postID string, optionIndex int) (domain.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.postIndex(postID)
	if i < 0 {
		return domain.Poll{}, domain.ErrPostNotFound
	}
	if s.posts[i].Poll == nil {
		return domain.Poll{}, domain.ErrNoPoll
	}
	updated, err := s.ballots.CastVote(postID, *s.posts[i].Poll, optionIndex, s.now())
	if err != nil {
		return domain.Poll{}, err
	}
	if _, err := s.updatePostLocked(postID, domain.PostPatch{Poll: &updated}); err != nil {
		return domain.Poll{}, err
	}
	return updated.Clone(), nil
}

// Share builds the outbound link and bumps the share count for platforms
// that open an intent.
func (s *Store) Share(postID string, platform share.Platform) (share.Link, domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.postIndex(postID)
	if i < 0 {
		return share.Link{}, domain.Post{}, domain.ErrPostNotFound
	}
	link, err := share.Build(s.posts[i], platform)
	if err != nil {
		return share.Link{}, domain.Post{}, err
	}
	if !platform.CountsAsShare() {
		return link, s.posts[i].Clone(), nil
	}
	shares := s.posts[i].Shares + 1
	p, err := s.updatePostLocked(postID, domain.PostPatch{Shares: &shares})
	if err != nil {
		return share.Link{}, domain.Post{}, err
	}
	return link, p, nil
}

// ShareViaDM counts one share however many recipients were picked.
func (s *Store) ShareViaDM(postID string, recipientIDs []string) (domain.Post, error) {
	recipients := slices.DeleteFunc(slices.Clone(recipientIDs), func(id string) bool {
		return strings.TrimSpace(id) == ""
	})
	if len(recipients) == 0 {
		return domain.Post{}, domain.ErrNoRecipients
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.postIndex(postID)
	if i < 0 {
		return domain.Post{}, domain.ErrPostNotFound
	}
	shares := s.posts[i].Shares + 1
	return s.updatePostLocked(postID, domain.PostPatch{Shares: &shares})
}

// ============================================
// Saved & Followed
// ============================================

// ToggleSavedPost adds id to the saved set or removes it, then persists the set.
// Write failures are logged; the in-memory set still changes.
func (s *Store) ToggleSavedPost(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, domain.ErrBlankID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved := !slices.Contains(s.savedIDs, id)
	if saved {
		s.savedIDs = append(slices.Clone(s.savedIDs), id)
	} else {
		s.savedIDs = slices.DeleteFunc(slices.Clone(s.savedIDs), func(v string) bool { return v == id })
	}
	s.bump()

	if s.saved != nil {
		if err := s.saved.Save(ctx, s.savedIDs); err != nil {
			log.Printf("failed to save saved posts: %v", err)
		}
	}
	return saved, nil
}

// ClearLocalData forgets the saved posts and removes them from storage.
func (s *Store) ClearLocalData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.savedIDs = []string{}
	s.bump()
	if s.saved == nil {
		return nil
	}
	return s.saved.Clear(ctx)
}

// ToggleFollow follows or unfollows userID. The current user's following
// count moves with the set membership.
func (s *Store) ToggleFollow(userID string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, domain.ErrBlankID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if userID == s.currentUser.ID {
		return false, domain.ErrSelfFollow
	}
	following := !slices.Contains(s.followedIDs, userID)
	if following {
		s.followedIDs = append(slices.Clone(s.followedIDs), userID)
		s.currentUser.FollowingCount++
	} else {
		s.followedIDs = slices.DeleteFunc(slices.Clone(s.followedIDs), func(v string) bool { return v == userID })
		s.currentUser.FollowingCount--
	}
	s.bump()
	return following, nil
}

// ============================================
// Current User
// ============================================

// UpdateCurrentUser merges patch into the current user. Snapshots already
// embedded in posts and comments keep their old values.
func (s *Store) UpdateCurrentUser(patch domain.UserPatch) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &s.currentUser
	if patch.Name != nil {
		u.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Username != nil {
		u.Username = strings.TrimSpace(*patch.Username)
	}
	if patch.Bio != nil {
		u.Bio = strings.TrimSpace(*patch.Bio)
	}
	if patch.AvatarURL != nil {
		u.AvatarURL = *patch.AvatarURL
	}
	if patch.BannerURL != nil {
		u.BannerURL = *patch.BannerURL
	}
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = *u
		}
	}
	s.bump()
	return *u
}

// ============================================
// Messaging
// ============================================

// StartConversation returns the conversation with targetUserID, creating it
// at the front of the list when there is none.
func (s *Store) StartConversation(targetUserID string) (domain.Conversation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.userLocked(targetUserID)
	if !ok {
		if strings.TrimSpace(targetUserID) == "" {
			return domain.Conversation{}, false, domain.ErrBlankID
		}
		return domain.Conversation{}, false, domain.ErrUserNotFound
	}
	conv, created, err := messaging.FindOrCreateConversation(s.conversations, s.currentUser, target, s.newID())
	if err != nil {
		return domain.Conversation{}, false, err
	}
	if created {
		s.conversations = append([]domain.Conversation{conv}, s.conversations...)
		s.bump()
	}
	return conv.Clone(), created, nil
}

// SendMessage appends a message from the current user. The conversation
// keeps its place in the list.
func (s *Store) SendMessage(conversationID, text string) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.conversationIndex(conversationID)
	if i < 0 {
		return domain.ChatMessage{}, domain.ErrConversationNotFound
	}
	conv, err := messaging.SendMessage(s.conversations[i], s.currentUser.ID, text, s.newID(), JustNow)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	s.conversations[i] = conv
	s.bump()
	return conv.Messages[len(conv.Messages)-1], nil
}

// ============================================
// Muted Words
// ============================================

// AddMutedWord stores word lower-cased. Adding a word twice is a no-op.
func (s *Store) AddMutedWord(word string) ([]string, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, domain.ErrEmptyMutedWord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.Contains(s.mutedWords, word) {
		s.mutedWords = append(slices.Clone(s.mutedWords), word)
		s.bump()
	}
	return slices.Clone(s.mutedWords), nil
}

func (s *Store) RemoveMutedWord(word string) []string {
	word = strings.ToLower(strings.TrimSpace(word))

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.mutedWords, word) {
		s.mutedWords = slices.DeleteFunc(slices.Clone(s.mutedWords), func(v string) bool { return v == word })
		s.bump()
	}
	return slices.Clone(s.mutedWords)
}
