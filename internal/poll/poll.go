// Package poll records votes, computes results and evaluates poll expiry.
package poll

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/Helbert77/Vigil/internal/domain"
)

const (
	MinOptions = 2
	MaxOptions = 4

	// RefreshInterval is how often a displayed countdown is recomputed.
	RefreshInterval = time.Minute
)

// New builds a poll from raw option labels. Blank labels are dropped.
func New(labels []string, d time.Duration, now time.Time) (domain.Poll, error) {
	options := make([]domain.PollOption, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		options = append(options, domain.PollOption{Text: l})
	}
	if len(options) < MinOptions {
		return domain.Poll{}, domain.ErrTooFewOptions
	}
	if len(options) > MaxOptions {
		return domain.Poll{}, domain.ErrTooManyOptions
	}
	if d <= 0 {
		return domain.Poll{}, domain.ErrPollDuration
	}
	return domain.Poll{Options: options, EndDate: now.Add(d)}, nil
}

// Normalize trims option labels and drops the blank ones. The result must
// still have between MinOptions and MaxOptions options.
func Normalize(p domain.Poll) (domain.Poll, error) {
	out := domain.Poll{EndDate: p.EndDate, Options: make([]domain.PollOption, 0, len(p.Options))}
	for _, o := range p.Options {
		o.Text = strings.TrimSpace(o.Text)
		if o.Text == "" {
			continue
		}
		out.Options = append(out.Options, o)
	}
	if len(out.Options) < MinOptions {
		return domain.Poll{}, domain.ErrTooFewOptions
	}
	if len(out.Options) > MaxOptions {
		return domain.Poll{}, domain.ErrTooManyOptions
	}
	return out, nil
}

// CheckUpdate reports whether next may replace cur. Options and the end date
// are fixed once a poll exists, and a count never goes down.
func CheckUpdate(cur, next domain.Poll) error {
	if len(next.Options) < MinOptions || len(next.Options) != len(cur.Options) {
		return domain.ErrPollRegression
	}
	if !next.EndDate.Equal(cur.EndDate) {
		return domain.ErrPollRegression
	}
	for i, o := range next.Options {
		if o.Text != cur.Options[i].Text || o.Votes < cur.Options[i].Votes {
			return domain.ErrPollRegression
		}
	}
	return nil
}

// Ballots remembers which polls this viewer voted in during the session.
// It is never persisted, so a new session may vote again.
type Ballots struct {
	mu    sync.Mutex
	voted map[string]int
}

func NewBallots() *Ballots {
	return &Ballots{voted: make(map[string]int)}
}

// Choice returns the option index the viewer picked for pollID.
func (b *Ballots) Choice(pollID string) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := b.voted[pollID]
	return i, ok
}

// CastVote returns a copy of p with one more vote on optionIndex.
// pollID identifies the poll for the one-vote-per-session rule; p is not mutated.
func (b *Ballots) CastVote(pollID string, p domain.Poll, optionIndex int, now time.Time) (domain.Poll, error) {
	if !p.Active(now) {
		return p, domain.ErrPollClosed
	}
	if optionIndex < 0 || optionIndex >= len(p.Options) {
		return p, domain.ErrOptionNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.voted[pollID]; ok {
		return p, domain.ErrAlreadyVoted
	}

	updated := p.Clone()
	updated.Options[optionIndex].Votes++
	b.voted[pollID] = optionIndex
	return updated, nil
}

// Results returns the rounded percentage of votes per option.
func Results(p domain.Poll) []int {
	out := make([]int, len(p.Options))
	total := p.TotalVotes()
	if total == 0 {
		return out
	}
	for i, o := range p.Options {
		out[i] = int(math.Round(float64(o.Votes) / float64(total) * 100))
	}
	return out
}

// Countdown is the time left on a poll broken into display units.
type Countdown struct {
	Ended   bool `json:"ended"`
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
}

// Remaining computes the countdown for p at now.
func Remaining(p domain.Poll, now time.Time) Countdown {
	diff := p.EndDate.Sub(now)
	if diff <= 0 {
		return Countdown{Ended: true}
	}
	return Countdown{
		Days:    int(diff / (24 * time.Hour)),
		Hours:   int(diff/time.Hour) % 24,
		Minutes: int(diff/time.Minute) % 60,
	}
}

func (c Countdown) String() string {
	if c.Ended {
		return "Poll ended"
	}
	var parts []string
	if c.Days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", c.Days))
	}
	if c.Hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", c.Hours))
	}
	if c.Minutes > 0 && c.Days == 0 {
		parts = append(parts, fmt.Sprintf("%dm", c.Minutes))
	}
	if len(parts) == 0 {
		return "less than a minute left"
	}
	return strings.Join(parts, " ") + " left"
}

// ShowResults reports whether percentages should be visible: after voting or once ended.
func ShowResults(p domain.Poll, voted bool, now time.Time) bool {
	return voted || !p.Active(now)
}

// Watch calls fn with the current countdown immediately and then every interval
// until the poll ends or ctx is done.
func Watch(ctx context.Context, p domain.Poll, interval time.Duration, clock func() time.Time, fn func(Countdown)) {
	c := Remaining(p, clock())
	fn(c)
	if c.Ended {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c := Remaining(p, clock())
			fn(c)
			if c.Ended {
				return
			}
		}
	}
}
