package view

import (
	"fmt"
	"log"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemoSize = 256

// Memo caches derived views per feed revision. A new revision makes every
// older entry unreachable, so nothing is ever invalidated by hand.
type Memo struct {
	cache *lru.Cache[string, any]
}

func NewMemo(size int) *Memo {
	if size <= 0 {
		size = defaultMemoSize
	}
	c, err := lru.New[string, any](size)
	if err != nil {
		log.Fatalf("failed to create view cache: %v", err)
	}
	return &Memo{cache: c}
}

func memoKey(kind string, revision uint64, arg string) string {
	return fmt.Sprintf("%s:%d:%s", kind, revision, strings.ToLower(arg))
}

// Topic returns the cached topic stats for revision, computing them with build on a miss.
func (m *Memo) Topic(revision uint64, tag string, build func() TopicStats) TopicStats {
	key := memoKey("topic", revision, tag)
	if v, ok := m.cache.Get(key); ok {
		return v.(TopicStats)
	}
	stats := build()
	m.cache.Add(key, stats)
	return stats
}

func (m *Memo) Search(revision uint64, query string, build func() SearchResults) SearchResults {
	key := memoKey("search", revision, query)
	if v, ok := m.cache.Get(key); ok {
		return v.(SearchResults)
	}
	res := build()
	m.cache.Add(key, res)
	return res
}

func (m *Memo) Len() int {
	return m.cache.Len()
}
