package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Helbert77/Vigil/internal/assist"
	"github.com/Helbert77/Vigil/internal/feed"
	"github.com/go-chi/chi/v5"
)

// awaitSlack is added to the assist delay before a waiting request gives up.
const awaitSlack = 5 * time.Second

type AssistRequest struct {
	Slot   string `json:"slot"`
	Prompt string `json:"prompt"`
}

func awaitContext(r *http.Request, svc *assist.Service) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), svc.Delay()+awaitSlack)
}

func writeAwaitError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		http.Error(w, "request superseded or timed out", http.StatusGatewayTimeout)
		return
	}
	writeError(w, err)
}

func slotOrDefault(slot string) string {
	if slot == "" {
		return "composer"
	}
	return slot
}

func generateTextHandler(svc *assist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AssistRequest
		if !decode(w, r, &req) {
			return
		}
		ctx, cancel := awaitContext(r, svc)
		defer cancel()

		text, err := assist.Await(ctx, func(deliver func(string)) error {
			return svc.GenerateText(slotOrDefault(req.Slot), req.Prompt, deliver)
		})
		if err != nil {
			writeAwaitError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"text": text})
	}
}

func generateImageHandler(svc *assist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AssistRequest
		if !decode(w, r, &req) {
			return
		}
		ctx, cancel := awaitContext(r, svc)
		defer cancel()

		url, err := assist.Await(ctx, func(deliver func(string)) error {
			return svc.GenerateImage(slotOrDefault(req.Slot), req.Prompt, deliver)
		})
		if err != nil {
			writeAwaitError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"image_url": url})
	}
}

func analyzeHandler(store *feed.Store, svc *assist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := chi.URLParam(r, "postID")
		post, err := store.Post(postID)
		if err != nil {
			writeError(w, err)
			return
		}
		ctx, cancel := awaitContext(r, svc)
		defer cancel()

		analysis, err := assist.Await(ctx, func(deliver func(assist.TheoryAnalysis)) error {
			svc.AnalyzeTheory("analysis:"+postID, post.Text, deliver)
			return nil
		})
		if err != nil {
			writeAwaitError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, analysis)
	}
}
