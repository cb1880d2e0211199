package rules

import (
	"regexp"
	"testing"

	adskip "github.com/heibot/adskip"
)

func TestRecordSighting_Append(t *testing.T) {
	updated := RecordSighting(nil, "某品牌")

	if len(updated) != 1 {
		t.Fatalf("len = %d, want 1", len(updated))
	}
	r := updated[0]
	if r.Keyword != "某品牌" || r.HitCount != 1 {
		t.Errorf("rule = %+v", r)
	}
	if r.AddedAt == 0 {
		t.Error("AddedAt not set")
	}
}

func TestRecordSighting_Increment(t *testing.T) {
	current := []adskip.KeywordRule{
		{Keyword: "某品牌", Pattern: "某品牌", HitCount: 2},
	}

	updated := RecordSighting(current, "某品牌")
	if len(updated) != 1 {
		t.Fatalf("len = %d, want 1", len(updated))
	}
	if updated[0].HitCount != 3 {
		t.Errorf("HitCount = %d, want 3", updated[0].HitCount)
	}
	// Input must not be mutated.
	if current[0].HitCount != 2 {
		t.Errorf("input mutated: HitCount = %d", current[0].HitCount)
	}
}

func TestRecordSighting_Blank(t *testing.T) {
	current := []adskip.KeywordRule{{Keyword: "某品牌", Pattern: "某品牌", HitCount: 1}}

	if got := RecordSighting(current, "   "); len(got) != 1 || got[0].HitCount != 1 {
		t.Errorf("blank advertiser changed the rule set: %+v", got)
	}
}

func TestRecordSighting_EscapesMetacharacters(t *testing.T) {
	updated := RecordSighting(nil, "C++ (官方)")

	re, err := regexp.Compile(updated[0].Pattern)
	if err != nil {
		t.Fatalf("escaped pattern does not compile: %v", err)
	}
	if !re.MatchString("推荐 C++ (官方) 课程") {
		t.Error("escaped pattern does not match the literal advertiser name")
	}
}

func TestRecordSighting_EvictsLowestHitCount(t *testing.T) {
	current := make([]adskip.KeywordRule, 0, adskip.MaxLearnedRules)
	for i := 0; i < adskip.MaxLearnedRules; i++ {
		hits := 5
		if i == 7 {
			hits = 1 // the eviction victim
		}
		current = append(current, adskip.KeywordRule{
			Keyword:  kwName(i),
			Pattern:  kwName(i),
			HitCount: hits,
			AddedAt:  int64(i),
		})
	}

	updated := RecordSighting(current, "新广告主")

	if len(updated) != adskip.MaxLearnedRules {
		t.Fatalf("len = %d, want %d", len(updated), adskip.MaxLearnedRules)
	}
	for _, r := range updated {
		if r.Keyword == kwName(7) {
			t.Error("lowest hit count rule was not evicted")
		}
	}
	found := false
	for _, r := range updated {
		if r.Keyword == "新广告主" {
			found = true
		}
	}
	if !found {
		t.Error("new rule missing after eviction")
	}
}

func TestRecordSighting_EvictionTiePrefersOldest(t *testing.T) {
	current := make([]adskip.KeywordRule, 0, adskip.MaxLearnedRules)
	for i := 0; i < adskip.MaxLearnedRules; i++ {
		current = append(current, adskip.KeywordRule{
			Keyword:  kwName(i),
			Pattern:  kwName(i),
			HitCount: 1,
			AddedAt:  int64(i),
		})
	}

	updated := RecordSighting(current, "新广告主")

	for _, r := range updated {
		if r.Keyword == kwName(0) {
			t.Error("oldest tied rule survived eviction")
		}
	}
}

func kwName(i int) string {
	return "品牌" + string(rune('A'+i%26)) + string(rune('a'+i/26))
}
