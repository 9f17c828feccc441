package httpapi

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Helbert77/Vigil/internal/domain"
	"github.com/Helbert77/Vigil/internal/feed"
	"github.com/Helbert77/Vigil/internal/poll"
	"github.com/Helbert77/Vigil/internal/render"
	"github.com/Helbert77/Vigil/internal/share"
	"github.com/go-chi/chi/v5"
)

// ============================================
// Posts
// ============================================

type CreatePostRequest struct {
	Text         string      `json:"text"`
	ImageURL     string      `json:"image_url"`
	VideoURL     string      `json:"video_url"`
	PollOptions  []string    `json:"poll_options"`
	PollDuration string      `json:"poll_duration"`
	From         domain.Page `json:"from"`
}

type CreatePostResponse struct {
	Post     domain.Post        `json:"post"`
	Navigate *domain.Navigation `json:"navigate,omitempty"`
}

func homeFeedHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.HomeFeed(r.URL.Query().Get("tag")))
	}
}

func createPostHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePostRequest
		if !decode(w, r, &req) {
			return
		}

		draft := domain.PostDraft{Text: req.Text, ImageURL: req.ImageURL, VideoURL: req.VideoURL}
		if len(req.PollOptions) > 0 {
			d, err := time.ParseDuration(req.PollDuration)
			if err != nil {
				http.Error(w, "invalid poll duration", http.StatusBadRequest)
				return
			}
			p, err := poll.New(req.PollOptions, d, store.Now())
			if err != nil {
				writeError(w, err)
				return
			}
			draft.Poll = &p
		}

		from := req.From
		if from == "" {
			from = domain.PageHome
		}
		post, nav, err := store.CreatePost(draft, from)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, CreatePostResponse{Post: post, Navigate: nav})
	}
}

func getPostHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := store.Post(chi.URLParam(r, "postID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

func updatePostHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch domain.PostPatch
		if !decode(w, r, &patch) {
			return
		}
		post, err := store.UpdatePost(chi.URLParam(r, "postID"), patch)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

func postHTMLHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := store.Post(chi.URLParam(r, "postID"))
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(render.PostHTML(post.Text)))
	}
}

type TextRequest struct {
	Text string `json:"text"`
}

func addCommentHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TextRequest
		if !decode(w, r, &req) {
			return
		}
		c, err := store.AddComment(chi.URLParam(r, "postID"), req.Text)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

func toggleLikeHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		liked, post, err := store.ToggleLike(chi.URLParam(r, "postID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"liked": liked, "post": post})
	}
}

func toggleSaveHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saved, err := store.ToggleSavedPost(r.Context(), chi.URLParam(r, "postID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"saved": saved, "saved_ids": store.SavedIDs()})
	}
}

func savedPostsHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.SavedPosts())
	}
}

func clearLocalDataHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.ClearLocalData(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================
// Polls
// ============================================

type VoteRequest struct {
	Option int `json:"option"`
}

func pollHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pv, err := store.PollView(chi.URLParam(r, "postID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pv)
	}
}

func voteHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VoteRequest
		if !decode(w, r, &req) {
			return
		}
		postID := chi.URLParam(r, "postID")
		if _, err := store.Vote(postID, req.Option); err != nil {
			writeError(w, err)
			return
		}
		pv, err := store.PollView(postID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pv)
	}
}

// watchPollHandler streams the countdown as server-sent events until the
// poll ends or the client goes away.
func watchPollHandler(store *feed.Store, interval time.Duration) http.HandlerFunc {
	if interval <= 0 {
		interval = poll.RefreshInterval
	}
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := store.Post(chi.URLParam(r, "postID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if post.Poll == nil {
			writeError(w, domain.ErrNoPoll)
			return
		}
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)

		poll.Watch(r.Context(), *post.Poll, interval, store.Now, func(c poll.Countdown) {
			b, err := json.Marshal(map[string]any{"countdown": c, "remaining": c.String()})
			if err != nil {
				log.Printf("failed to encode countdown: %v", err)
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		})
	}
}

// ============================================
// Sharing
// ============================================

type ShareRequest struct {
	Platform string `json:"platform"`
}

type ShareDMRequest struct {
	RecipientIDs []string `json:"recipient_ids"`
}

func shareHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ShareRequest
		if !decode(w, r, &req) {
			return
		}
		platform, err := share.ParsePlatform(req.Platform)
		if err != nil {
			writeError(w, err)
			return
		}
		link, post, err := store.Share(chi.URLParam(r, "postID"), platform)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"link": link, "post": post})
	}
}

func shareDMHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ShareDMRequest
		if !decode(w, r, &req) {
			return
		}
		post, err := store.ShareViaDM(chi.URLParam(r, "postID"), req.RecipientIDs)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}
