// Package keyword performs near-zero-cost local ad screening: literal
// vocabulary matching via an Aho-Corasick automaton, learned regex rules,
// and a sliding-window density gate that rejects sparse false positives.
package keyword

import (
	"log"
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"

	adskip "github.com/heibot/adskip"
	"github.com/heibot/adskip/utils"
)

// Matcher screens text units against the combined built-in and learned
// vocabulary. Compiled matchers are immutable and safe for concurrent use.
type Matcher struct {
	fingerprint uint64
	automaton   *ahocorasick.Matcher
	literals    []string
	learned     []*regexp.Regexp
}

// Build compiles a matcher from the built-in vocabulary (minus disabled
// entries) and the learned rules. Learned rule patterns that fail to
// compile are skipped with a warning, never fatal.
func Build(learned []adskip.KeywordRule, disabledBuiltins []string) *Matcher {
	disabled := make(map[string]struct{}, len(disabledBuiltins))
	for _, d := range disabledBuiltins {
		disabled[d] = struct{}{}
	}

	var literals []string
	for _, kw := range BuiltinKeywords {
		if _, off := disabled[kw]; off {
			continue
		}
		literals = append(literals, strings.ToLower(kw))
	}

	var regexps []*regexp.Regexp
	fpParts := make([]string, 0, len(literals)+len(learned))
	fpParts = append(fpParts, literals...)
	for _, rule := range learned {
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			log.Printf("[keyword] skipping invalid learned pattern %q: %v", rule.Pattern, err)
			continue
		}
		regexps = append(regexps, re)
		fpParts = append(fpParts, rule.Pattern)
	}

	m := &Matcher{
		fingerprint: utils.FingerprintStrings(fpParts),
		literals:    literals,
		learned:     regexps,
	}
	if len(literals) > 0 {
		m.automaton = ahocorasick.NewStringMatcher(literals)
	}
	return m
}

// Fingerprint identifies the effective keyword set. Two matchers built from
// the same effective set share a fingerprint.
func (m *Matcher) Fingerprint() uint64 {
	return m.fingerprint
}

// Matches reports whether the text contains any vocabulary entry.
func (m *Matcher) Matches(text string) bool {
	t := normalizeText(text)
	if m.automaton != nil && len(m.automaton.MatchThreadSafe([]byte(t))) > 0 {
		return true
	}
	for _, re := range m.learned {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// Scan returns the timestamp of each comment unit that matches the
// vocabulary. A unit contributes at most one timestamp.
func (m *Matcher) Scan(units []adskip.TimedText) []float64 {
	var hits []float64
	for _, u := range units {
		if m.Matches(u.Content) {
			hits = append(hits, u.Time)
		}
	}
	return hits
}

// ScanSpans returns the caption entries that match the vocabulary together
// with their start timestamps. A caption contributes at most one hit.
func (m *Matcher) ScanSpans(entries []adskip.TimedSpanText) ([]adskip.TimedSpanText, []float64) {
	var spans []adskip.TimedSpanText
	var hits []float64
	for _, e := range entries {
		if m.Matches(e.Content) {
			spans = append(spans, e)
			hits = append(hits, e.From)
		}
	}
	return spans, hits
}

// normalizeText lowercases, folds full-width ASCII variants, and strips
// separator noise so obfuscated vocabulary still matches. Folding runs
// first so full-width separators get stripped too.
func normalizeText(text string) string {
	runes := []rune(strings.ToLower(text))
	for i, r := range runes {
		if r >= 65281 && r <= 65374 {
			runes[i] = r - 65248
		}
		// 全角空格
		if r == 12288 {
			runes[i] = ' '
		}
	}

	replacer := strings.NewReplacer(
		" ", "", "\t", "", "\n", "", "*", "", "-", "", ".", "", ",", "", "_", "",
	)
	return replacer.Replace(string(runes))
}
