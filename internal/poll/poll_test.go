package poll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Helbert77/Vigil/internal/domain"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func twoOptionPoll(t *testing.T, d time.Duration) domain.Poll {
	t.Helper()
	p, err := New([]string{"A", "B"}, d, now)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestNewTrimsAndValidates(t *testing.T) {
	p, err := New([]string{" A ", "", "B", "  "}, time.Hour, now)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(p.Options) != 2 || p.Options[0].Text != "A" || p.Options[1].Text != "B" {
		t.Errorf("unexpected options %+v", p.Options)
	}
	if !p.EndDate.Equal(now.Add(time.Hour)) {
		t.Errorf("EndDate = %v", p.EndDate)
	}

	if _, err := New([]string{"A", " "}, time.Hour, now); !errors.Is(err, domain.ErrTooFewOptions) {
		t.Errorf("expected ErrTooFewOptions, got %v", err)
	}
	if _, err := New([]string{"A", "B", "C", "D", "E"}, time.Hour, now); !errors.Is(err, domain.ErrTooManyOptions) {
		t.Errorf("expected ErrTooManyOptions, got %v", err)
	}
	if _, err := New([]string{"A", "B"}, 0, now); !errors.Is(err, domain.ErrPollDuration) {
		t.Errorf("expected ErrPollDuration, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	end := now.Add(time.Hour)
	p, err := Normalize(domain.Poll{Options: []domain.PollOption{{Text: " A "}, {Text: "\t"}, {Text: "B", Votes: 2}}, EndDate: end})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(p.Options) != 2 || p.Options[0].Text != "A" || p.Options[1].Votes != 2 || !p.EndDate.Equal(end) {
		t.Errorf("poll = %+v", p)
	}

	if _, err := Normalize(domain.Poll{Options: []domain.PollOption{{Text: "A"}, {Text: "  "}}}); !errors.Is(err, domain.ErrTooFewOptions) {
		t.Errorf("expected ErrTooFewOptions, got %v", err)
	}
	five := domain.Poll{Options: []domain.PollOption{{Text: "A"}, {Text: "B"}, {Text: "C"}, {Text: "D"}, {Text: "E"}}}
	if _, err := Normalize(five); !errors.Is(err, domain.ErrTooManyOptions) {
		t.Errorf("expected ErrTooManyOptions, got %v", err)
	}
}

func TestCheckUpdate(t *testing.T) {
	cur := twoOptionPoll(t, time.Hour)
	cur.Options[0].Votes = 2

	next := cur.Clone()
	next.Options[1].Votes++
	if err := CheckUpdate(cur, next); err != nil {
		t.Errorf("added vote rejected: %v", err)
	}

	lower := cur.Clone()
	lower.Options[0].Votes = 1
	renamed := cur.Clone()
	renamed.Options[1].Text = "C"
	later := cur.Clone()
	later.EndDate = later.EndDate.Add(time.Minute)
	for name, bad := range map[string]domain.Poll{
		"fewer votes": lower,
		"renamed":     renamed,
		"end date":    later,
		"one option":  {Options: cur.Options[:1], EndDate: cur.EndDate},
	} {
		if err := CheckUpdate(cur, bad); !errors.Is(err, domain.ErrPollRegression) {
			t.Errorf("%s: expected ErrPollRegression, got %v", name, err)
		}
	}
}

func TestCastVoteThenResults(t *testing.T) {
	p := twoOptionPoll(t, time.Hour)
	b := NewBallots()

	updated, err := b.CastVote("p1", p, 0, now)
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if p.Options[0].Votes != 0 {
		t.Errorf("input poll was mutated")
	}

	got := Results(updated)
	if got[0] != 100 || got[1] != 0 {
		t.Errorf("Results = %v, want [100 0]", got)
	}

	c := Remaining(updated, now)
	if c.Ended || c.Days != 0 || c.Hours != 1 || c.Minutes != 0 {
		t.Errorf("Remaining = %+v", c)
	}
	if c.String() != "1h left" {
		t.Errorf("String() = %q", c.String())
	}
}

func TestCastVoteOncePerSession(t *testing.T) {
	p := twoOptionPoll(t, time.Hour)
	b := NewBallots()

	p, err := b.CastVote("p1", p, 1, now)
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	again, err := b.CastVote("p1", p, 0, now)
	if !errors.Is(err, domain.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
	if again.TotalVotes() != 1 {
		t.Errorf("second vote changed totals: %d", again.TotalVotes())
	}
	if choice, ok := b.Choice("p1"); !ok || choice != 1 {
		t.Errorf("Choice = %d, %v", choice, ok)
	}
}

func TestCastVoteOnExpiredPoll(t *testing.T) {
	p := twoOptionPoll(t, time.Minute)
	b := NewBallots()

	for _, at := range []time.Time{now.Add(time.Minute), now.Add(time.Hour)} {
		got, err := b.CastVote("p1", p, 0, at)
		if !errors.Is(err, domain.ErrPollClosed) {
			t.Fatalf("expected ErrPollClosed, got %v", err)
		}
		if got.TotalVotes() != 0 {
			t.Errorf("expired poll changed votes")
		}
	}
	if _, ok := b.Choice("p1"); ok {
		t.Errorf("rejected vote must not be recorded")
	}
}

func TestCastVoteUnknownOption(t *testing.T) {
	p := twoOptionPoll(t, time.Hour)
	if _, err := NewBallots().CastVote("p1", p, 2, now); !errors.Is(err, domain.ErrOptionNotFound) {
		t.Errorf("expected ErrOptionNotFound, got %v", err)
	}
}

func TestVotesFromDistinctViewersSum(t *testing.T) {
	p, err := New([]string{"A", "B", "C"}, time.Hour, now)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	const viewers = 7
	for i := 0; i < viewers; i++ {
		p, err = NewBallots().CastVote("p1", p, i%3, now)
		if err != nil {
			t.Fatalf("vote %d: %v", i, err)
		}
	}
	if p.TotalVotes() != viewers {
		t.Errorf("TotalVotes = %d, want %d", p.TotalVotes(), viewers)
	}

	sum := 0
	for _, pct := range Results(p) {
		sum += pct
	}
	if sum < 99 || sum > 101 {
		t.Errorf("percentages sum to %d", sum)
	}
}

func TestResultsWithoutVotes(t *testing.T) {
	p := twoOptionPoll(t, time.Hour)
	for i, pct := range Results(p) {
		if pct != 0 {
			t.Errorf("option %d = %d%%, want 0", i, pct)
		}
	}
}

func TestCountdownString(t *testing.T) {
	end := now
	cases := []struct {
		left time.Duration
		want string
	}{
		{0, "Poll ended"},
		{-time.Hour, "Poll ended"},
		{30 * time.Second, "less than a minute left"},
		{45 * time.Minute, "45m left"},
		{2*time.Hour + 5*time.Minute, "2h 5m left"},
		{24*time.Hour + 30*time.Minute, "1d left"},
		{3*24*time.Hour + 4*time.Hour + 10*time.Minute, "3d 4h left"},
	}
	for _, c := range cases {
		p := domain.Poll{EndDate: end}
		got := Remaining(p, end.Add(-c.left)).String()
		if got != c.want {
			t.Errorf("left %v: got %q, want %q", c.left, got, c.want)
		}
	}
}

func TestShowResults(t *testing.T) {
	p := twoOptionPoll(t, time.Hour)
	if ShowResults(p, false, now) {
		t.Errorf("active unvoted poll should hide results")
	}
	if !ShowResults(p, true, now) {
		t.Errorf("voted poll should show results")
	}
	if !ShowResults(p, false, now.Add(2*time.Hour)) {
		t.Errorf("ended poll should show results")
	}
}

func TestWatchStopsWhenEnded(t *testing.T) {
	p := twoOptionPoll(t, time.Minute)
	ended := domain.Poll{Options: p.Options, EndDate: now}

	var calls []Countdown
	Watch(context.Background(), ended, time.Millisecond, func() time.Time { return now }, func(c Countdown) {
		calls = append(calls, c)
	})
	if len(calls) != 1 || !calls[0].Ended {
		t.Errorf("calls = %+v", calls)
	}
}

func TestWatchTicksUntilEnd(t *testing.T) {
	p := twoOptionPoll(t, 2*time.Minute)

	tick := 0
	clock := func() time.Time {
		at := now.Add(time.Duration(tick) * time.Minute)
		tick++
		return at
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var calls []Countdown
	Watch(ctx, p, time.Millisecond, clock, func(c Countdown) {
		calls = append(calls, c)
	})
	if len(calls) != 3 {
		t.Fatalf("got %d updates, want 3: %+v", len(calls), calls)
	}
	if calls[0].Minutes != 2 || calls[1].Minutes != 1 || !calls[2].Ended {
		t.Errorf("unexpected sequence %+v", calls)
	}
}
