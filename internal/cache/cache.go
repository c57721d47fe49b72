// Package cache provides the TTL-based memoization layer in front of the
// progress evaluator and the project-level progress aggregate. Caches are
// explicit, constructor-injected objects so tests can control lifecycle and
// randomness; entries expire by TTL only and are never updated in place.
package cache

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"scholarly/internal/core"
	"scholarly/internal/progress"
)

const (
	// DefaultTTL is how long a cached result stays valid.
	DefaultTTL = 5 * time.Minute
	// DefaultSweepChance is the probability of an opportunistic full sweep
	// per access, bounding memory without a background timer.
	DefaultSweepChance = 0.1
	// DefaultKeyTextPrefix is how many characters of question text feed keys.
	DefaultKeyTextPrefix = 100
)

// entry is one cached value with its insertion timestamp.
type entry struct {
	result    any
	timestamp time.Time
	key       string
}

// ResultCache is a mutex-guarded TTL map. Safe for concurrent use.
type ResultCache struct {
	mu          sync.Mutex
	entries     map[string]entry
	ttl         time.Duration
	sweepChance float64
	randFloat   func() float64
	textPrefix  int
}

// Option configures a ResultCache.
type Option func(*ResultCache)

// WithRand injects the random source used for sweep decisions. For tests.
func WithRand(fn func() float64) Option {
	return func(c *ResultCache) { c.randFloat = fn }
}

// WithKeyTextPrefix overrides how many characters of text feed cache keys.
func WithKeyTextPrefix(n int) Option {
	return func(c *ResultCache) {
		if n > 0 {
			c.textPrefix = n
		}
	}
}

// New creates a ResultCache. Non-positive ttl or sweepChance fall back to the
// defaults.
func New(ttl time.Duration, sweepChance float64, opts ...Option) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if sweepChance <= 0 {
		sweepChance = DefaultSweepChance
	}
	c := &ResultCache{
		entries:     make(map[string]entry),
		ttl:         ttl,
		sweepChance: sweepChance,
		randFloat:   rand.Float64,
		textPrefix:  DefaultKeyTextPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCompute returns the cached value for key when fresh, otherwise calls
// compute, stores the result, and returns it. Each access has a sweepChance
// probability of evicting all expired entries.
func (c *ResultCache) GetOrCompute(key string, compute func() any) any {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.randFloat() < c.sweepChance {
		c.sweepLocked()
	}

	if cached, ok := c.entries[key]; ok && time.Since(cached.timestamp) < c.ttl {
		return cached.result
	}

	result := compute()
	c.entries[key] = entry{result: result, timestamp: time.Now(), key: key}
	return result
}

// sweepLocked removes all expired entries. Caller holds the lock.
func (c *ResultCache) sweepLocked() {
	for key, cached := range c.entries {
		if time.Since(cached.timestamp) >= c.ttl {
			delete(c.entries, key)
		}
	}
}

// Clear removes every entry. The only manual invalidation supported.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of entries currently held, expired or not.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// keyText truncates and lowercases free text for use in composite keys.
func (c *ResultCache) keyText(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if len(text) > c.textPrefix {
		text = text[:c.textPrefix]
	}
	return text
}

// QuestionEvaluator computes progress for one research question.
type QuestionEvaluator func(question string, conversationCount, documentCount int, history []string) core.QuestionProgress

// ProjectEvaluator computes the project-level progress aggregate.
type ProjectEvaluator func(questions []string, conversationCount, documentCount int) progress.ProjectProgress

// ProgressCache wraps the progress evaluator with get-or-compute semantics.
// The evaluator is injected so tests can count calls.
type ProgressCache struct {
	cache            *ResultCache
	evaluateQuestion QuestionEvaluator
	evaluateProject  ProjectEvaluator
}

// NewProgressCache creates a ProgressCache over the given ResultCache. Nil
// evaluators default to the progress package's pure functions.
func NewProgressCache(cache *ResultCache, question QuestionEvaluator, project ProjectEvaluator) *ProgressCache {
	if question == nil {
		question = progress.AnalyzeQuestionProgress
	}
	if project == nil {
		project = progress.AnalyzeProjectProgress
	}
	return &ProgressCache{cache: cache, evaluateQuestion: question, evaluateProject: project}
}

// AnalyzeQuestionProgressCached returns the cached progress for identical
// inputs within the TTL, computing it otherwise.
func (p *ProgressCache) AnalyzeQuestionProgressCached(question string, conversationCount, documentCount int, history []string) core.QuestionProgress {
	key := fmt.Sprintf("question|%s|%d|%d|%d", p.cache.keyText(question), conversationCount, documentCount, len(history))
	result := p.cache.GetOrCompute(key, func() any {
		return p.evaluateQuestion(question, conversationCount, documentCount, history)
	})
	return result.(core.QuestionProgress)
}

// AnalyzeProjectProgressCached returns the cached project aggregate for
// identical inputs within the TTL, computing it otherwise.
func (p *ProgressCache) AnalyzeProjectProgressCached(projectID string, questions []string, conversationCount, documentCount int) progress.ProjectProgress {
	joined := p.cache.keyText(strings.Join(questions, ";"))
	key := fmt.Sprintf("project|%s|%s|%d|%d|%d", projectID, joined, conversationCount, documentCount, len(questions))
	result := p.cache.GetOrCompute(key, func() any {
		return p.evaluateProject(questions, conversationCount, documentCount)
	})
	return result.(progress.ProjectProgress)
}

// Clear empties the underlying cache.
func (p *ProgressCache) Clear() {
	p.cache.Clear()
}
