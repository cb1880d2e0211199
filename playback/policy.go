// Package playback decides what the player should do with a resolved
// detection: jump over the segment, ask the viewer, or just mark it.
package playback

import (
	adskip "github.com/heibot/adskip"
)

// Policy defines how a confirmed ad segment is handled during playback.
type Policy string

const (
	// PolicyAutoSkip jumps over the segment without asking.
	PolicyAutoSkip Policy = "auto_skip"

	// PolicyPrompt asks the viewer before skipping.
	PolicyPrompt Policy = "prompt"

	// PolicyMarkOnly marks the segment on the progress bar, no skipping.
	PolicyMarkOnly Policy = "mark_only"

	// PolicyOff ignores detections entirely.
	PolicyOff Policy = "off"
)

// Action is the concrete instruction handed to the player.
type Action string

const (
	ActionSeek   Action = "seek"   // jump to the end of the segment
	ActionPrompt Action = "prompt" // show a skip prompt
	ActionMark   Action = "mark"   // annotate the progress bar
	ActionNone   Action = "none"   // do nothing
)

// Decision is the resolved playback behavior for one segment.
type Decision struct {
	Action Action

	// SeekTo is the position to jump to when Action is ActionSeek, or
	// the target offered by the prompt.
	SeekTo float64

	// Range is the segment the decision covers.
	Range adskip.AdTimeRange
}

// Decide maps a detection result onto a playback decision under the
// given policy. A nil result or a disabled policy yields ActionNone.
func Decide(policy Policy, result *adskip.AdDetectionResult) Decision {
	if result == nil || policy == PolicyOff {
		return Decision{Action: ActionNone}
	}

	d := Decision{
		SeekTo: result.EndTime,
		Range:  result.AdTimeRange,
	}

	switch policy {
	case PolicyAutoSkip:
		d.Action = ActionSeek
	case PolicyPrompt:
		d.Action = ActionPrompt
	case PolicyMarkOnly:
		d.Action = ActionMark
	default:
		d.Action = ActionMark
	}
	return d
}

// ShouldSkipAt reports whether playback at position t sits inside the
// segment and the policy calls for an automatic jump.
func ShouldSkipAt(policy Policy, result *adskip.AdDetectionResult, t float64) bool {
	if result == nil || policy != PolicyAutoSkip {
		return false
	}
	return result.Contains(t)
}
