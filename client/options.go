// Package client provides the main detection client for locating embedded
// ads in user-generated video.
package client

import (
	"time"

	adskip "github.com/heibot/adskip"
	"github.com/heibot/adskip/hooks"
	"github.com/heibot/adskip/providers"
	"github.com/heibot/adskip/store"
)

// Options configures the detection client.
type Options struct {
	// Store is the data storage backend (required).
	Store store.Store

	// Hooks receives notifications as detections resolve.
	Hooks hooks.Hooks

	// Provider is the AI inference backend. Optional; detections that
	// need an AI call fail without one, local screening still works.
	Provider providers.Provider

	// Screen configures the local screening stage.
	Screen ScreenConfig

	// IgnoreShorterThan skips videos shorter than this many seconds.
	IgnoreShorterThan float64

	// IgnoreLongerThan skips videos longer than this many seconds.
	// Zero means no upper bound.
	IgnoreLongerThan float64

	// CacheTTL bounds the age of entries kept by PruneCache.
	CacheTTL time.Duration

	// InferenceTimeout bounds each AI inference call.
	InferenceTimeout time.Duration

	// ConnectivityTimeout bounds the optional pre-inference probe.
	ConnectivityTimeout time.Duration

	// CheckConnectivity enables the reachability probe before inference.
	CheckConnectivity bool
}

// ScreenConfig configures keyword screening and text compression.
type ScreenConfig struct {
	// DenseWindowSeconds is the span of the caption density gate.
	DenseWindowSeconds float64

	// DenseMinHits is the hit count needed to trip the density gate.
	DenseMinHits int

	// CommentWindowSeconds is the half-width of the context window cut
	// around each comment hit.
	CommentWindowSeconds float64

	// CompressWindowSeconds is the caption compression window.
	CompressWindowSeconds float64

	// FillerWords overrides the default filler set dropped during
	// compression. Nil keeps the defaults.
	FillerWords []string
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Hooks: hooks.NopHooks{},
		Screen: ScreenConfig{
			DenseWindowSeconds:    adskip.DefaultDenseWindowSeconds,
			DenseMinHits:          adskip.DefaultDenseMinHits,
			CommentWindowSeconds:  adskip.DefaultCommentWindowSeconds,
			CompressWindowSeconds: adskip.DefaultCompressWindowSeconds,
		},
		IgnoreShorterThan:   adskip.DefaultIgnoreShorterThan,
		CacheTTL:            adskip.DefaultCacheTTL,
		InferenceTimeout:    adskip.DefaultInferenceTimeout,
		ConnectivityTimeout: adskip.DefaultConnectivityTimeout,
	}
}

// DetectInput is the input for one detection.
type DetectInput struct {
	// Video is the video under analysis.
	Video adskip.VideoInfo

	// Captions is the subtitle track, if one exists. A non-empty track
	// selects the caption route.
	Captions []adskip.TimedSpanText

	// Comments is the timed comment stream, used when no captions exist.
	Comments []adskip.TimedText

	// DisabledBuiltins removes specific built-in keywords for this
	// detection.
	DisabledBuiltins []string

	// LoggedIn reports whether the viewing session is authenticated.
	// Unauthenticated sessions are skipped.
	LoggedIn bool
}

// Outcome is the discriminated result of one detection.
type Outcome struct {
	// Status says how the detection resolved.
	Status adskip.DetectStatus

	// Source says which stage produced the answer.
	Source adskip.DetectSource

	// Route is the input route that was taken.
	Route adskip.Route

	// Result carries the confirmed ad range when Status is StatusDetected.
	Result *adskip.AdDetectionResult

	// SkipReason is set when Status is StatusSkipped.
	SkipReason adskip.SkipReason

	// Stale marks an outcome that resolved after its video was
	// superseded. Stale outcomes had all side effects suppressed.
	Stale bool
}
