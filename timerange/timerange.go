// Package timerange is the sole authority for constructing validated ad
// time ranges from untrusted input, whether local keyword hits or model
// output. Every non-nil range it returns satisfies 0 <= StartTime < EndTime.
package timerange

import (
	"encoding/json"
	"strconv"

	adskip "github.com/heibot/adskip"
)

// FromDenseHits derives a range from caption entries that tripped the
// density gate: the earliest start through the latest end.
func FromDenseHits(hitSpans []adskip.TimedSpanText) (adskip.AdTimeRange, error) {
	if len(hitSpans) == 0 {
		return adskip.AdTimeRange{}, adskip.ErrNoInput
	}

	start := hitSpans[0].From
	end := hitSpans[0].To
	for _, s := range hitSpans[1:] {
		if s.From < start {
			start = s.From
		}
		if s.To > end {
			end = s.To
		}
	}

	if start < 0 || start >= end {
		return adskip.AdTimeRange{}, adskip.NewValidationError("range", "derived range is not a positive forward span")
	}
	return adskip.AdTimeRange{StartTime: start, EndTime: end}, nil
}

// aiPayload mirrors the JSON contract expected from providers. Fields are
// raw messages so absent, null, numeric and string-numeric values can be
// told apart.
type aiPayload struct {
	StartTime  json.RawMessage `json:"startTime"`
	EndTime    json.RawMessage `json:"endTime"`
	Advertiser json.RawMessage `json:"advertiser"`
}

// FromAIResponse validates a provider's raw response. The outcomes are:
//
//   - malformed JSON: a ParseError, the caller must not cache
//   - both times absent, null, zero or non-numeric: (nil, nil), a confirmed
//     no-ad result the caller may cache
//   - negative times or start >= end: (nil, nil), treated as no-ad
//   - otherwise: a result carrying the range and any advertiser name
func FromAIResponse(provider string, raw []byte) (*adskip.AdDetectionResult, error) {
	var payload aiPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, adskip.NewParseError(provider, string(raw), err)
	}

	start, startOK := coerceFloat(payload.StartTime)
	end, endOK := coerceFloat(payload.EndTime)

	noStart := !startOK || start == 0
	noEnd := !endOK || end == 0
	if noStart && noEnd {
		return nil, nil
	}
	if !startOK || !endOK {
		return nil, nil
	}
	if start < 0 || end < 0 || start >= end {
		return nil, nil
	}

	return &adskip.AdDetectionResult{
		AdTimeRange: adskip.AdTimeRange{StartTime: start, EndTime: end},
		Advertiser:  coerceString(payload.Advertiser),
	}, nil
}

// coerceFloat accepts JSON numbers and numeric strings; anything else
// (absent, null, objects, non-numeric strings) fails the coercion.
func coerceFloat(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
