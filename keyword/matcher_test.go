package keyword

import (
	"testing"

	adskip "github.com/heibot/adskip"
)

func TestMatcher_Builtins(t *testing.T) {
	m := Build(nil, nil)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain hit", "这期视频感谢大家支持", true},
		{"sponsor phrase", "恰饭时间到", true},
		{"separator obfuscation", "恰*饭了兄弟们", true},
		{"space obfuscation", "恰 饭时间", true},
		{"full width space obfuscation", "恰　饭时间", true},
		{"full width digits around keyword", "点击下方１２３", true},
		{"clean text", "今天教大家做红烧肉", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Matches(tt.text); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMatcher_DisabledBuiltins(t *testing.T) {
	m := Build(nil, []string{"感谢"})

	if m.Matches("感谢大家") {
		t.Error("disabled builtin still matched")
	}
	if !m.Matches("推广一下") {
		t.Error("remaining builtin stopped matching")
	}
}

func TestMatcher_LearnedRules(t *testing.T) {
	rules := []adskip.KeywordRule{
		{Keyword: "某品牌", Pattern: "某品牌", HitCount: 2},
	}
	m := Build(rules, nil)

	if !m.Matches("今天的视频由某品牌赞助播出") {
		t.Error("learned rule did not match")
	}
}

func TestMatcher_InvalidLearnedPatternSkipped(t *testing.T) {
	rules := []adskip.KeywordRule{
		{Keyword: "bad", Pattern: "([unclosed"},
		{Keyword: "good", Pattern: "某品牌"},
	}
	m := Build(rules, nil)

	if !m.Matches("某品牌真不错") {
		t.Error("valid rule after invalid one did not match")
	}
}

func TestMatcher_Scan_FirstMatchPerUnit(t *testing.T) {
	m := Build(nil, nil)

	units := []adskip.TimedText{
		{Time: 10, Content: "广告来了 推广 恰饭"}, // multiple keywords, one hit
		{Time: 20, Content: "正常弹幕"},
		{Time: 30, Content: "金主爸爸好"},
	}

	hits := m.Scan(units)
	want := []float64{10, 30}
	if len(hits) != len(want) {
		t.Fatalf("Scan() = %v, want %v", hits, want)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Errorf("hits[%d] = %v, want %v", i, hits[i], want[i])
		}
	}
}

func TestMatcher_ScanSpans(t *testing.T) {
	m := Build(nil, nil)

	entries := []adskip.TimedSpanText{
		{From: 100, To: 103, Content: "感谢金主爸爸"},
		{From: 103, To: 106, Content: "回到正题"},
		{From: 106, To: 110, Content: "下单有折扣"},
	}

	spans, hits := m.ScanSpans(entries)
	if len(spans) != 2 || len(hits) != 2 {
		t.Fatalf("ScanSpans() returned %d spans / %d hits, want 2 / 2", len(spans), len(hits))
	}
	if hits[0] != 100 || hits[1] != 106 {
		t.Errorf("hits = %v, want [100 106]", hits)
	}
	if spans[1].Content != "下单有折扣" {
		t.Errorf("spans[1].Content = %q", spans[1].Content)
	}
}

func TestCache_ReusesMatcher(t *testing.T) {
	c := NewCache()
	rules := []adskip.KeywordRule{{Keyword: "某品牌", Pattern: "某品牌"}}

	m1 := c.Get(rules, nil)
	m2 := c.Get(rules, nil)
	if m1 != m2 {
		t.Error("unchanged inputs rebuilt the matcher")
	}

	m3 := c.Get(rules, []string{"感谢"})
	if m3 == m1 {
		t.Error("changed disabled set did not rebuild the matcher")
	}

	m4 := c.Get(append(rules, adskip.KeywordRule{Keyword: "新品牌", Pattern: "新品牌"}), []string{"感谢"})
	if m4 == m3 {
		t.Error("changed rules did not rebuild the matcher")
	}
}
