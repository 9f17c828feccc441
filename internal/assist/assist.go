// Package assist simulates the remote drafting assistant and theory analysis.
//
// Each request completes after a fixed delay and cannot be stopped once
// started. Requests are grouped by slot (one slot per open composer or modal);
// a newer request in the same slot supersedes the older one, whose result is
// dropped when it arrives.
package assist

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Helbert77/Vigil/internal/domain"
)

const DefaultDelay = 2 * time.Second

var ErrEmptyPrompt = fmt.Errorf("%w: prompt is blank", domain.ErrValidation)

type TheoryAnalysis struct {
	KeyPoints         []string `json:"key_points"`
	PossibleFallacies []string `json:"possible_fallacies"`
	CounterArguments  []string `json:"counter_arguments"`
	RelatedTopics     []string `json:"related_topics"`
}

var draftTemplates = []string{
	`Have you considered the connection between "%s" and the recent solar flares? The official narrative doesn't add up. They're hiding something big, and it's all connected. #FollowTheClues`,
	`Sources tell me that "%s" is just the tip of the iceberg. It's a distraction from the real operation. Look deeper, question everything. The truth is out there, but not where they want you to look. #TheGreatAwakening`,
	`The declassified documents on "%s" are heavily redacted for a reason. What are they trying to conceal? It points to a cover-up of massive proportions. We need to demand transparency. #HiddenTruth`,
}

var mockAnalysis = TheoryAnalysis{
	KeyPoints: []string{
		"The theory posits a direct link between seismic activity and ancient ley lines.",
		"It suggests an external, intelligent force is activating a subterranean network.",
		"The ultimate goal of this activation remains unknown but is implied to be significant.",
	},
	PossibleFallacies: []string{
		"Correlation vs. Causation: Assuming that because two events occur together (seismic activity and ley line alignment), one must be causing the other.",
		"Argument from Ignorance: The argument relies on the lack of a 'natural' explanation as proof of an artificial one.",
	},
	CounterArguments: []string{
		"Geological Explanations: Modern seismology provides well-understood models for tectonic plate movement and seismic events that do not require external activation.",
		"Confirmation Bias: Ley lines are often drawn by connecting historical sites, and with enough points, patterns can emerge by chance.",
	},
	RelatedTopics: []string{
		"Hollow Earth Theory",
		"Geomancy",
		"Project Stargate (CIA psychic research)",
		"Nikola Tesla's Earthquake Machine",
	},
}

type Service struct {
	delay time.Duration
	now   func() time.Time
	pick  func(n int) int

	mu      sync.Mutex
	current map[string]uint64
	pending map[string]bool
}

func NewService(delay time.Duration) *Service {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Service{
		delay:   delay,
		now:     time.Now,
		pick:    rand.Intn,
		current: make(map[string]uint64),
		pending: make(map[string]bool),
	}
}

// schedule runs build after the delay and hands the result to fn only if no
// newer request has been made for slot in the meantime.
func (s *Service) schedule(slot string, build func() any, fn func(any)) {
	s.mu.Lock()
	s.current[slot]++
	ticket := s.current[slot]
	s.pending[slot] = true
	s.mu.Unlock()

	time.AfterFunc(s.delay, func() {
		res := build()

		s.mu.Lock()
		live := s.current[slot] == ticket
		if live {
			s.pending[slot] = false
		}
		s.mu.Unlock()

		if live {
			fn(res)
		}
	})
}

func (s *Service) Delay() time.Duration {
	return s.delay
}

// Pending reports whether slot is waiting for a result.
func (s *Service) Pending(slot string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[slot]
}

// Discard drops whatever is in flight for slot, e.g. when its view is closed.
func (s *Service) Discard(slot string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[slot]++
	s.pending[slot] = false
}

// GenerateText drafts post text about prompt.
func (s *Service) GenerateText(slot, prompt string, fn func(string)) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ErrEmptyPrompt
	}
	s.schedule(slot, func() any {
		return fmt.Sprintf(draftTemplates[s.pick(len(draftTemplates))], prompt)
	}, func(v any) {
		fn(v.(string))
	})
	return nil
}

// GenerateImage returns a placeholder image URL seeded from prompt.
func (s *Service) GenerateImage(slot, prompt string, fn func(string)) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ErrEmptyPrompt
	}
	s.schedule(slot, func() any {
		seed := strings.Join(strings.Fields(prompt), "-") + fmt.Sprintf("-%d", s.now().UnixMilli())
		return "https://picsum.photos/seed/" + seed + "/600/400"
	}, func(v any) {
		fn(v.(string))
	})
	return nil
}

// AnalyzeTheory produces a breakdown of postText.
func (s *Service) AnalyzeTheory(slot, postText string, fn func(TheoryAnalysis)) {
	s.schedule(slot, func() any {
		return mockAnalysis
	}, func(v any) {
		fn(v.(TheoryAnalysis))
	})
}

// AppendDraft joins generated text onto whatever the user already typed.
func AppendDraft(existing, generated string) string {
	if existing == "" {
		return generated
	}
	return existing + "\n\n" + generated
}

// Await blocks until start delivers a result or ctx is done.
// A superseded request never delivers, so callers should bound ctx.
func Await[T any](ctx context.Context, start func(deliver func(T)) error) (T, error) {
	ch := make(chan T, 1)
	var zero T
	if err := start(func(v T) { ch <- v }); err != nil {
		return zero, err
	}
	select {
	case v := <-ch:
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
