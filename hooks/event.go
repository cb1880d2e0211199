package hooks

import (
	"time"

	adskip "github.com/heibot/adskip"
)

// AdDetectedEvent is emitted when a detection confirms an ad segment.
type AdDetectedEvent struct {
	// Video the ad was found in
	Video adskip.VideoInfo `json:"video"`

	// Confirmed ad range and advertiser
	Result adskip.AdDetectionResult `json:"result"`

	// Where the result came from (cache, keyword, comments, ai)
	Source adskip.DetectSource `json:"source"`

	// Which input route was taken
	Route adskip.Route `json:"route"`

	Timestamp time.Time `json:"timestamp"`
}

// NoAdConfirmedEvent is emitted when a detection confirms the absence of
// an ad (including the cached no-ad sentinel).
type NoAdConfirmedEvent struct {
	Video     adskip.VideoInfo    `json:"video"`
	Source    adskip.DetectSource `json:"source"`
	Route     adskip.Route        `json:"route"`
	Timestamp time.Time           `json:"timestamp"`
}

// RuleLearnedEvent is emitted when an advertiser sighting updates the
// learned rule set.
type RuleLearnedEvent struct {
	// Advertiser name that was recorded
	Advertiser string `json:"advertiser"`

	// Rule set size after the update
	RuleCount int `json:"rule_count"`

	// Whether an existing rule was bumped rather than appended
	Existing bool `json:"existing"`

	Timestamp time.Time `json:"timestamp"`
}

// DetectionFailedEvent is emitted when a detection fails. Failed
// detections are never cached, so the next trigger retries naturally.
type DetectionFailedEvent struct {
	Video adskip.VideoInfo `json:"video"`

	// Categorized failure cause
	Category adskip.ErrorCategory `json:"category"`

	Err error `json:"-"`

	Timestamp time.Time `json:"timestamp"`
}
