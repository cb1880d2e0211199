// Package adskip provides an embedded-advertisement detection pipeline for
// user-generated video: local keyword pre-screening, text compression, AI
// model delegation (DeepSeek, Gemini), response validation, a self-learning
// keyword-rule store, and a TTL cache keyed by content identifier.
package adskip

import "time"

// Route represents the text source used for a detection request.
type Route string

const (
	RouteCaptions Route = "captions" // subtitle-based detection
	RouteComments Route = "comments" // danmaku/comment fallback
)

// DetectStatus represents the terminal state of a detection request.
type DetectStatus string

const (
	StatusDetected DetectStatus = "detected" // ad range found
	StatusNoAd     DetectStatus = "no_ad"    // confirmed no advertisement
	StatusSkipped  DetectStatus = "skipped"  // not eligible for detection
	StatusFailed   DetectStatus = "failed"   // detection failed, retry allowed
)

// DetectSource identifies which stage produced a detection outcome.
type DetectSource string

const (
	SourceCache    DetectSource = "cache"    // cache hit
	SourceKeyword  DetectSource = "keyword"  // dense local keyword window
	SourceComments DetectSource = "comments" // comment screening, no AI needed
	SourceAI       DetectSource = "ai"       // AI model response
)

// SkipReason explains why a request terminated with StatusSkipped.
type SkipReason string

const (
	SkipTooShort    SkipReason = "too_short"
	SkipTooLong     SkipReason = "too_long"
	SkipNotLoggedIn SkipReason = "not_logged_in"
)

// Default configuration values
const (
	DefaultCacheTTL            = 3 * 24 * time.Hour
	DefaultInferenceTimeout    = 60 * time.Second
	DefaultConnectivityTimeout = 15 * time.Second

	DefaultDenseWindowSeconds    = 30.0 // density gate window size
	DefaultDenseMinHits          = 3    // hits required inside the window
	DefaultCommentWindowSeconds  = 120.0
	DefaultCompressWindowSeconds = 60.0

	DefaultIgnoreShorterThan = 300.0 // seconds, skip short videos

	MaxLearnedRules = 50
)
