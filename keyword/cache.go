package keyword

import (
	"sync"

	adskip "github.com/heibot/adskip"
	"github.com/heibot/adskip/utils"
)

// Cache reuses a compiled Matcher until the effective keyword set changes.
// Compilation is cheap, but rules change rarely and detections are frequent,
// so per-request recompilation is wasted work.
type Cache struct {
	mu          sync.Mutex
	inputsFP    uint64
	current     *Matcher
	initialized bool
}

// NewCache returns an empty matcher cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns a matcher for the given inputs, rebuilding only when the
// learned rules or disabled built-ins differ from the last call.
func (c *Cache) Get(learned []adskip.KeywordRule, disabledBuiltins []string) *Matcher {
	parts := make([]string, 0, len(learned)+len(disabledBuiltins)+1)
	for _, r := range learned {
		parts = append(parts, r.Pattern)
	}
	parts = append(parts, "|")
	parts = append(parts, disabledBuiltins...)
	fp := utils.FingerprintStrings(parts)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized && c.inputsFP == fp {
		return c.current
	}
	c.current = Build(learned, disabledBuiltins)
	c.inputsFP = fp
	c.initialized = true
	return c.current
}
