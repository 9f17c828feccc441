// Package share builds outbound links for sharing a post.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Helbert77/Vigil/internal/domain"
)

const BaseURL = "https://vigil.net/post/"

type Platform string

const (
	PlatformCopy      Platform = "copy"
	PlatformWhatsApp  Platform = "whatsapp"
	PlatformTelegram  Platform = "telegram"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
)

// Link is what the caller opens or copies.
// Intent is empty for clipboard-only platforms.
type Link struct {
	Platform  Platform `json:"platform"`
	PostURL   string   `json:"post_url"`
	Intent    string   `json:"intent,omitempty"`
	Clipboard bool     `json:"clipboard"`
}

func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(strings.ToLower(strings.TrimSpace(s))); p {
	case PlatformCopy, PlatformWhatsApp, PlatformTelegram, PlatformFacebook, PlatformInstagram:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownPlatform, s)
	}
}

// CountsAsShare reports whether sharing to p increments the post's share count.
// Clipboard copies do not.
func (p Platform) CountsAsShare() bool {
	return p != PlatformCopy && p != PlatformInstagram
}

func PostURL(postID string) string {
	return BaseURL + postID
}

// escape matches JavaScript's encodeURIComponent closely enough for share intents.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Build returns the share link for post on platform.
func Build(post domain.Post, p Platform) (Link, error) {
	postURL := PostURL(post.ID)
	u := escape(postURL)
	text := escape(`Check out this post on Vigil: "` + post.Text + `"`)

	link := Link{Platform: p, PostURL: postURL}
	switch p {
	case PlatformWhatsApp:
		link.Intent = "https://wa.me/?text=" + text + "%20" + u
	case PlatformTelegram:
		link.Intent = "https://t.me/share/url?url=" + u + "&text=" + text
	case PlatformFacebook:
		link.Intent = "https://www.facebook.com/sharer/sharer.php?u=" + u
	case PlatformCopy, PlatformInstagram:
		link.Clipboard = true
	default:
		return Link{}, fmt.Errorf("%w: %q", domain.ErrUnknownPlatform, p)
	}
	return link, nil
}
