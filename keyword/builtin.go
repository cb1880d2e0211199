package keyword

// BuiltinKeywords is the static ad vocabulary. These are literal substrings
// common in sponsored segments of Chinese-language videos. Built-in entries
// are never mutated or evicted; individual ones can be disabled per request.
var BuiltinKeywords = []string{
	"感谢",
	"赞助",
	"链接",
	"下单",
	"折扣",
	"领券",
	"金主爸爸",
	"点击下方",
	"简介区",
	"防不胜防",
	"恰饭",
	"推广",
	"广告",
	"甚至还有",
}
