package playback

import (
	"testing"

	adskip "github.com/heibot/adskip"
)

func TestDecide(t *testing.T) {
	result := &adskip.AdDetectionResult{
		AdTimeRange: adskip.AdTimeRange{StartTime: 120, EndTime: 180},
		Advertiser:  "某品牌",
	}

	tests := []struct {
		name   string
		policy Policy
		result *adskip.AdDetectionResult
		want   Action
	}{
		{"auto skip", PolicyAutoSkip, result, ActionSeek},
		{"prompt", PolicyPrompt, result, ActionPrompt},
		{"mark only", PolicyMarkOnly, result, ActionMark},
		{"off", PolicyOff, result, ActionNone},
		{"nil result", PolicyAutoSkip, nil, ActionNone},
		{"unknown policy defaults to mark", Policy("bogus"), result, ActionMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.policy, tt.result)
			if d.Action != tt.want {
				t.Errorf("Decide() action = %v, want %v", d.Action, tt.want)
			}
			if tt.want == ActionSeek && d.SeekTo != 180 {
				t.Errorf("SeekTo = %v, want 180", d.SeekTo)
			}
		})
	}
}

func TestShouldSkipAt(t *testing.T) {
	result := &adskip.AdDetectionResult{
		AdTimeRange: adskip.AdTimeRange{StartTime: 120, EndTime: 180},
	}

	if !ShouldSkipAt(PolicyAutoSkip, result, 150) {
		t.Error("position inside segment not skipped")
	}
	if ShouldSkipAt(PolicyAutoSkip, result, 50) {
		t.Error("position outside segment skipped")
	}
	if ShouldSkipAt(PolicyPrompt, result, 150) {
		t.Error("prompt policy auto-skipped")
	}
	if ShouldSkipAt(PolicyAutoSkip, nil, 150) {
		t.Error("nil result skipped")
	}
}
