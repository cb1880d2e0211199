package providers

import (
	"fmt"
	"strings"
)

// SystemPrompt is the instruction shared by all providers. It pins the
// output to a single JSON object so responses survive strict parsing.
const SystemPrompt = `你是一个视频广告检测助手。用户会提供一段视频的字幕或弹幕文本，其中时间戳以秒为单位。
你的任务是判断视频中是否存在植入广告（恰饭）片段，并给出广告的起止时间和广告主名称。

必须只输出一个 JSON 对象，不要输出任何其他文字。格式如下：
检测到广告时：{"startTime":120.5,"endTime":180.3,"advertiser":"某品牌"}
未检测到广告时：{"startTime":0,"endTime":0,"advertiser":null}

startTime 和 endTime 必须是数字（秒），advertiser 是广告主名称字符串或 null。`

// BuildUserPrompt assembles the per-video prompt from metadata and the
// compressed text. Title and description are auxiliary context; either
// may be empty.
func BuildUserPrompt(title, description, compressed string) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "视频标题：%s\n", title)
	}
	if description != "" {
		fmt.Fprintf(&b, "视频简介：%s\n", description)
	}
	b.WriteString("视频文本内容：\n")
	b.WriteString(compressed)
	return b.String()
}
