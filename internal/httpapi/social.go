package httpapi

import (
	"net/http"

	"github.com/Helbert77/Vigil/internal/domain"
	"github.com/Helbert77/Vigil/internal/feed"
	"github.com/go-chi/chi/v5"
)

// ============================================
// Users
// ============================================

func getMeHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.CurrentUser())
	}
}

func updateMeHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch domain.UserPatch
		if !decode(w, r, &patch) {
			return
		}
		writeJSON(w, http.StatusOK, store.UpdateCurrentUser(patch))
	}
}

func getUserHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		u, err := store.User(userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": u, "following": store.IsFollowing(userID)})
	}
}

func profilePostsHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaOnly := r.URL.Query().Get("media") == "1"
		writeJSON(w, http.StatusOK, store.ProfilePosts(chi.URLParam(r, "userID"), mediaOnly))
	}
}

func toggleFollowHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		following, err := store.ToggleFollow(chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"following": following, "me": store.CurrentUser()})
	}
}

func followersHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.FilterFollowers(r.URL.Query().Get("q")))
	}
}

func suggestionsHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.UsersToFollow())
	}
}

// ============================================
// Discovery
// ============================================

func searchHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Search(r.URL.Query().Get("q")))
	}
}

func topicHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Topic(chi.URLParam(r, "tag")))
	}
}

func communitiesHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Communities())
	}
}

func communityPostsHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := store.CommunityPosts(chi.URLParam(r, "communityID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, posts)
	}
}

func notificationsHandler(store *feed.Store) http.HandlerFunc {
	type item struct {
		domain.Notification
		Category  domain.NotificationCategory `json:"category"`
		Navigable bool                        `json:"navigable"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ns := store.Notifications()
		out := make([]item, len(ns))
		for i, n := range ns {
			out[i] = item{Notification: n, Category: n.Category(), Navigable: n.Navigable()}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func trendingHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.TrendingTopics())
	}
}

func navigateHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var nav domain.Navigation
		if !decode(w, r, &nav) {
			return
		}
		writeJSON(w, http.StatusOK, store.Resolve(nav))
	}
}

// ============================================
// Messages
// ============================================

type StartConversationRequest struct {
	UserID string `json:"user_id"`
}

func conversationsHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Conversations())
	}
}

func recipientsHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.AvailableRecipients(r.URL.Query().Get("q")))
	}
}

func startConversationHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartConversationRequest
		if !decode(w, r, &req) {
			return
		}
		conv, created, err := store.StartConversation(req.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, conv)
	}
}

func sendMessageHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TextRequest
		if !decode(w, r, &req) {
			return
		}
		msg, err := store.SendMessage(chi.URLParam(r, "conversationID"), req.Text)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, msg)
	}
}

// ============================================
// Settings
// ============================================

type MutedWordRequest struct {
	Word string `json:"word"`
}

func mutedWordsHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.MutedWords())
	}
}

func addMutedWordHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MutedWordRequest
		if !decode(w, r, &req) {
			return
		}
		words, err := store.AddMutedWord(req.Word)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, words)
	}
}

func removeMutedWordHandler(store *feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.RemoveMutedWord(chi.URLParam(r, "word")))
	}
}
