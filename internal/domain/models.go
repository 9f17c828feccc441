package domain

import (
	"strings"
	"time"
)

// ============================================
// Domain Models
// ============================================

type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	AvatarURL      string `json:"avatar_url"`
	BannerURL      string `json:"banner_url,omitempty"`
	Bio            string `json:"bio,omitempty"`
	JoinDate       string `json:"join_date"`
	FollowingCount int    `json:"following_count"`
	FollowersCount int    `json:"followers_count"`
}

// Comment is immutable once appended to a post.
type Comment struct {
	ID        string `json:"id"`
	User      User   `json:"user"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type PollOption struct {
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

type Poll struct {
	Options []PollOption `json:"options"`
	EndDate time.Time    `json:"end_date"`
}

// Active reports whether the poll still accepts votes at now.
func (p Poll) Active(now time.Time) bool {
	return now.Before(p.EndDate)
}

func (p Poll) TotalVotes() int {
	total := 0
	for _, o := range p.Options {
		total += o.Votes
	}
	return total
}

// Clone returns a poll whose options do not share storage with p.
func (p Poll) Clone() Poll {
	options := make([]PollOption, len(p.Options))
	copy(options, p.Options)
	return Poll{Options: options, EndDate: p.EndDate}
}

// Post carries a snapshot of its author taken when it was created.
type Post struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	Text      string    `json:"text"`
	ImageURL  string    `json:"image_url,omitempty"`
	VideoURL  string    `json:"video_url,omitempty"`
	Poll      *Poll     `json:"poll,omitempty"`
	Timestamp string    `json:"timestamp"`
	Likes     int       `json:"likes"`
	Comments  []Comment `json:"comments"`
	Shares    int       `json:"shares"`
}

// HasContent reports whether the post has text, an image, a video or a poll.
func (p Post) HasContent() bool {
	return strings.TrimSpace(p.Text) != "" || p.ImageURL != "" || p.VideoURL != "" || p.Poll != nil
}

func (p Post) HasMedia() bool {
	return p.ImageURL != "" || p.VideoURL != ""
}

// Clone returns a deep copy so callers cannot reach the store's slices.
func (p Post) Clone() Post {
	c := p
	c.Comments = make([]Comment, len(p.Comments))
	copy(c.Comments, p.Comments)
	if p.Poll != nil {
		poll := p.Poll.Clone()
		c.Poll = &poll
	}
	return c
}

type NotificationCategory string

const (
	NotificationLike    NotificationCategory = "like"
	NotificationComment NotificationCategory = "comment"
	NotificationFollow  NotificationCategory = "follow"
	NotificationOther   NotificationCategory = "other"
)

type Notification struct {
	ID        string `json:"id"`
	User      User   `json:"user"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	PostID    string `json:"post_id,omitempty"`
}

// Category is inferred from the notification text; there is no typed field.
func (n Notification) Category() NotificationCategory {
	switch {
	case strings.Contains(n.Text, "liked"):
		return NotificationLike
	case strings.Contains(n.Text, "commented"):
		return NotificationComment
	case strings.Contains(n.Text, "following"):
		return NotificationFollow
	default:
		return NotificationOther
	}
}

func (n Notification) Navigable() bool {
	return n.PostID != ""
}

type ChatMessage struct {
	ID        string `json:"id"`
	SenderID  string `json:"sender_id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Conversation is always between exactly two participants.
type Conversation struct {
	ID           string        `json:"id"`
	Participants []User        `json:"participants"`
	Messages     []ChatMessage `json:"messages"`
}

func (c Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// Partner returns the participant that is not userID.
func (c Conversation) Partner(userID string) (User, bool) {
	for _, p := range c.Participants {
		if p.ID != userID {
			return p, true
		}
	}
	return User{}, false
}

func (c Conversation) Clone() Conversation {
	out := c
	out.Participants = make([]User, len(c.Participants))
	copy(out.Participants, c.Participants)
	out.Messages = make([]ChatMessage, len(c.Messages))
	copy(out.Messages, c.Messages)
	return out
}

type Community struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberCount int    `json:"member_count"`
	BannerURL   string `json:"banner_url"`
	Tag         string `json:"tag"`
}

type TrendingTopic struct {
	Tag   string `json:"tag"`
	Posts string `json:"posts"`
}

// ============================================
// Navigation
// ============================================

type Page string

const (
	PageHome            Page = "Home"
	PageProfile         Page = "Profile"
	PageSettings        Page = "Settings"
	PageNotifications   Page = "Notifications"
	PageMessages        Page = "Messages"
	PageSaved           Page = "Saved"
	PageCommunities     Page = "Communities"
	PagePostDetail      Page = "PostDetail"
	PageSearch          Page = "Search"
	PageCommunityDetail Page = "CommunityDetail"
	PageTopicDetail     Page = "TopicDetail"
)

// Navigation is the signal handed to the routing shell.
type Navigation struct {
	Page Page   `json:"page"`
	ID   string `json:"id,omitempty"`
}

func NavigateToPost(postID string) Navigation {
	return Navigation{Page: PagePostDetail, ID: postID}
}

func NavigateToProfile(userID string) Navigation {
	return Navigation{Page: PageProfile, ID: userID}
}

func NavigateToTopic(tag string) Navigation {
	return Navigation{Page: PageTopicDetail, ID: tag}
}

func NavigateToCommunity(communityID string) Navigation {
	return Navigation{Page: PageCommunityDetail, ID: communityID}
}

// ============================================
// Mutation Inputs
// ============================================

type PostDraft struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
	Poll     *Poll  `json:"poll,omitempty"`
}

// PostPatch merges only the non-nil fields into a post.
type PostPatch struct {
	Likes    *int       `json:"likes,omitempty"`
	Shares   *int       `json:"shares,omitempty"`
	Comments *[]Comment `json:"comments,omitempty"`
	Poll     *Poll      `json:"poll,omitempty"`
}

type UserPatch struct {
	Name      *string `json:"name,omitempty"`
	Username  *string `json:"username,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	BannerURL *string `json:"banner_url,omitempty"`
}
