package textnorm

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	adskip "github.com/heibot/adskip"
)

func TestCompress(t *testing.T) {
	tests := []struct {
		name     string
		captions []adskip.TimedSpanText
		want     string
	}{
		{
			name:     "empty input",
			captions: nil,
			want:     "",
		},
		{
			name: "filler only",
			captions: []adskip.TimedSpanText{
				{From: 1, To: 2, Content: "嗯"},
				{From: 3, To: 4, Content: "哈哈"},
			},
			want: "",
		},
		{
			name: "single window",
			captions: []adskip.TimedSpanText{
				{From: 0, To: 3, Content: "大家好"},
				{From: 5, To: 8, Content: "今天测评"},
			},
			want: "[0-60s]: 大家好，今天测评",
		},
		{
			name: "adjacent duplicates removed",
			captions: []adskip.TimedSpanText{
				{From: 0, To: 3, Content: "大家好"},
				{From: 4, To: 6, Content: "大家好"},
				{From: 8, To: 10, Content: "开始了"},
			},
			want: "[0-60s]: 大家好，开始了",
		},
		{
			name: "two windows",
			captions: []adskip.TimedSpanText{
				{From: 10, To: 12, Content: "第一段"},
				{From: 70, To: 75, Content: "第二段"},
			},
			want: "[0-60s]: 第一段; [60-120s]: 第二段",
		},
		{
			name: "windows sorted by time",
			captions: []adskip.TimedSpanText{
				{From: 130, To: 132, Content: "后面"},
				{From: 10, To: 12, Content: "前面"},
			},
			want: "[0-60s]: 前面; [120-180s]: 后面",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compress(tt.captions, DefaultCompressOptions())
			if got != tt.want {
				t.Errorf("Compress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompress_Deterministic(t *testing.T) {
	captions := []adskip.TimedSpanText{
		{From: 0, To: 3, Content: "开头"},
		{From: 65, To: 68, Content: "中间"},
		{From: 125, To: 130, Content: "结尾"},
	}

	first := Compress(captions, DefaultCompressOptions())
	for i := 0; i < 5; i++ {
		if got := Compress(captions, DefaultCompressOptions()); got != first {
			t.Fatalf("Compress() not deterministic: %q vs %q", got, first)
		}
	}
}

// Re-compressing the parsed output must preserve window boundaries and
// content ordering.
func TestCompress_Idempotent(t *testing.T) {
	captions := []adskip.TimedSpanText{
		{From: 5, To: 8, Content: "第一句"},
		{From: 20, To: 24, Content: "第二句"},
		{From: 70, To: 74, Content: "第三句"},
	}

	once := Compress(captions, DefaultCompressOptions())

	// Re-parse each window back into a span anchored at its window start.
	var reparsed []adskip.TimedSpanText
	for _, part := range strings.Split(once, "; ") {
		bracket := strings.Index(part, "]: ")
		if bracket < 0 {
			t.Fatalf("unexpected window format: %q", part)
		}
		header := part[1:bracket]
		content := part[bracket+len("]: "):]
		var from, to float64
		if _, err := sscanWindow(header, &from, &to); err != nil {
			t.Fatalf("parse window %q: %v", header, err)
		}
		for _, c := range strings.Split(content, "，") {
			reparsed = append(reparsed, adskip.TimedSpanText{From: from, To: to, Content: c})
		}
	}

	twice := Compress(reparsed, DefaultCompressOptions())
	if twice != once {
		t.Errorf("Compress() not idempotent:\n once = %q\ntwice = %q", once, twice)
	}
}

var errBadWindow = errors.New("bad window header")

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func sscanWindow(header string, from, to *float64) (int, error) {
	header = strings.TrimSuffix(header, "s")
	parts := strings.SplitN(header, "-", 2)
	if len(parts) != 2 {
		return 0, errBadWindow
	}
	var err error
	if *from, err = parseFloat(parts[0]); err != nil {
		return 0, err
	}
	if *to, err = parseFloat(parts[1]); err != nil {
		return 1, err
	}
	return 2, nil
}

func TestFormatCaptions(t *testing.T) {
	entries := []adskip.TimedSpanText{
		{From: 0, To: 2.5, Content: "你好"},
		{From: 3, To: 5, Content: "世界"},
	}

	got := FormatCaptions(entries)
	want := "[0-2.5]:你好;[3-5]:世界"
	if got != want {
		t.Errorf("FormatCaptions() = %q, want %q", got, want)
	}

	if FormatCaptions(nil) != "" {
		t.Error("FormatCaptions(nil) should be empty")
	}
}

func TestFormatComments(t *testing.T) {
	entries := []adskip.TimedText{
		{Time: 120.4, Content: "广告来了"},
		{Time: 125, Content: "跳过跳过"},
	}

	got := FormatComments(entries)
	want := "[120s] 广告来了; [125s] 跳过跳过"
	if got != want {
		t.Errorf("FormatComments() = %q, want %q", got, want)
	}

	if FormatComments(nil) != "" {
		t.Error("FormatComments(nil) should be empty")
	}
}
