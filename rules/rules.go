// Package rules maintains the learned keyword rule set: advertiser names
// confirmed by past detections, kept as escaped patterns with hit counts.
package rules

import (
	"regexp"
	"strings"
	"time"

	adskip "github.com/heibot/adskip"
)

// RecordSighting returns the rule set updated with one confirmed sighting
// of the given advertiser. A blank advertiser leaves the set unchanged.
// Existing rules get their hit count bumped; new advertisers are appended
// with a metacharacter-escaped pattern. When the set exceeds
// adskip.MaxLearnedRules, the single rule with the lowest hit count is
// evicted, oldest first on ties.
func RecordSighting(current []adskip.KeywordRule, advertiser string) []adskip.KeywordRule {
	name := strings.TrimSpace(advertiser)
	if name == "" {
		return current
	}

	updated := make([]adskip.KeywordRule, len(current))
	copy(updated, current)

	for i := range updated {
		if updated[i].Keyword == name {
			updated[i].HitCount++
			return updated
		}
	}

	updated = append(updated, adskip.KeywordRule{
		Keyword:  name,
		Pattern:  regexp.QuoteMeta(name),
		HitCount: 1,
		AddedAt:  time.Now().Unix(),
	})

	if len(updated) > adskip.MaxLearnedRules {
		evict := 0
		for i := 1; i < len(updated); i++ {
			if updated[i].HitCount < updated[evict].HitCount {
				evict = i
			}
		}
		updated = append(updated[:evict], updated[evict+1:]...)
	}
	return updated
}
