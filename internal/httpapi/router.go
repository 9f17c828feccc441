// Package httpapi exposes the feed store to a browser UI running on the same machine.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Helbert77/Vigil/internal/assist"
	"github.com/Helbert77/Vigil/internal/domain"
	"github.com/Helbert77/Vigil/internal/feed"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Deps struct {
	Store          *feed.Store
	Assist         *assist.Service
	AllowedOrigins []string
	PollRefresh    time.Duration
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("vigil"))
	})

	r.Route("/me", func(r chi.Router) {
		r.Get("/", getMeHandler(d.Store))
		r.Patch("/", updateMeHandler(d.Store))
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", homeFeedHandler(d.Store))
		r.Post("/", createPostHandler(d.Store))
		r.Route("/{postID}", func(r chi.Router) {
			r.Get("/", getPostHandler(d.Store))
			r.Patch("/", updatePostHandler(d.Store))
			r.Get("/html", postHTMLHandler(d.Store))
			r.Post("/comments", addCommentHandler(d.Store))
			r.Post("/like", toggleLikeHandler(d.Store))
			r.Post("/save", toggleSaveHandler(d.Store))
			r.Get("/poll", pollHandler(d.Store))
			r.Get("/poll/watch", watchPollHandler(d.Store, d.PollRefresh))
			r.Post("/poll/vote", voteHandler(d.Store))
			r.Post("/share", shareHandler(d.Store))
			r.Post("/share/dm", shareDMHandler(d.Store))
			r.Post("/analysis", analyzeHandler(d.Store, d.Assist))
		})
	})

	r.Route("/saved", func(r chi.Router) {
		r.Get("/", savedPostsHandler(d.Store))
		r.Delete("/", clearLocalDataHandler(d.Store))
	})

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/", getUserHandler(d.Store))
		r.Get("/posts", profilePostsHandler(d.Store))
		r.Post("/follow", toggleFollowHandler(d.Store))
	})

	r.Get("/search", searchHandler(d.Store))
	r.Get("/topics/{tag}", topicHandler(d.Store))
	r.Get("/communities", communitiesHandler(d.Store))
	r.Get("/communities/{communityID}/posts", communityPostsHandler(d.Store))
	r.Get("/notifications", notificationsHandler(d.Store))
	r.Get("/trending", trendingHandler(d.Store))
	r.Get("/suggestions", suggestionsHandler(d.Store))
	r.Get("/followers", followersHandler(d.Store))
	r.Get("/recipients", recipientsHandler(d.Store))
	r.Post("/navigate", navigateHandler(d.Store))

	r.Route("/conversations", func(r chi.Router) {
		r.Get("/", conversationsHandler(d.Store))
		r.Post("/", startConversationHandler(d.Store))
		r.Post("/{conversationID}/messages", sendMessageHandler(d.Store))
	})

	r.Route("/settings/muted-words", func(r chi.Router) {
		r.Get("/", mutedWordsHandler(d.Store))
		r.Post("/", addMutedWordHandler(d.Store))
		r.Delete("/{word}", removeMutedWordHandler(d.Store))
	})

	r.Post("/assist/text", generateTextHandler(d.Assist))
	r.Post("/assist/image", generateImageHandler(d.Assist))

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeError maps the domain error categories onto status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("request failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
