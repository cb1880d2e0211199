package adskip

// TimedText is one point-in-time text unit, typically a danmaku comment.
type TimedText struct {
	Time    float64 `json:"time"`    // playback offset in seconds
	Content string  `json:"content"` // raw text
}

// TimedSpanText is one caption entry spanning [From, To] in seconds.
type TimedSpanText struct {
	From    float64 `json:"from"`
	To      float64 `json:"to"`
	Content string  `json:"content"`
}

// AdTimeRange is a validated advertisement segment [StartTime, EndTime).
// Always 0 <= StartTime < EndTime; construct only via timerange.
type AdTimeRange struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// Duration returns the segment length in seconds.
func (r AdTimeRange) Duration() float64 {
	return r.EndTime - r.StartTime
}

// Contains reports whether t falls inside the range.
func (r AdTimeRange) Contains(t float64) bool {
	return t >= r.StartTime && t < r.EndTime
}

// AdDetectionResult is an ad range plus the advertiser the model named,
// when it named one. Local keyword short-circuits produce no advertiser.
type AdDetectionResult struct {
	AdTimeRange
	Advertiser string `json:"advertiser,omitempty"`
}

// KeywordRule is one entry of the keyword vocabulary. Built-in rules are
// static; learned rules are created from AI-identified advertisers and
// reinforced by repeat sightings.
type KeywordRule struct {
	Keyword  string `json:"keyword" db:"keyword"`    // display form
	Pattern  string `json:"pattern" db:"pattern"`    // regex source, literal-escaped for learned rules
	HitCount int    `json:"hit_count" db:"hit_count"`
	AddedAt  int64  `json:"added_at" db:"added_at"` // unix seconds
}

// CacheEntry is a stored detection result for one content identifier.
// StartTime == EndTime == 0 marks a confirmed no-ad result, distinct from
// a missing entry ("never checked").
type CacheEntry struct {
	StartTime  float64 `json:"start_time" db:"start_time"`
	EndTime    float64 `json:"end_time" db:"end_time"`
	Advertiser string  `json:"advertiser,omitempty" db:"advertiser"`
	CreatedAt  int64   `json:"created_at" db:"created_at"` // unix seconds
}

// IsNoAd reports whether the entry is the confirmed no-ad sentinel.
func (e CacheEntry) IsNoAd() bool {
	return e.StartTime == 0 && e.EndTime == 0
}

// VideoInfo carries the metadata a detection request needs about the
// content being analyzed. The caller fetches it however is native to its
// platform; the pipeline only reads it.
type VideoInfo struct {
	ID             string  `json:"id"`               // stable content identifier, cache key
	Title          string  `json:"title"`            // optional AI context
	Description    string  `json:"description"`      // optional AI context
	Duration       float64 `json:"duration"`         // seconds
	CommentTrackID int64   `json:"comment_track_id"` // secondary id for the comment route, 0 if unresolved
}
