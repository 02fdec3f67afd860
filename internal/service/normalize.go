package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents NFKD分解后去掉所有组合附加符号，土耳其语等带变音字符归一到基本拉丁字母。
var stripAccents = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// NormalizeText 自由文本答案归一化：去变音、转小写、去首尾空白，只保留字母数字和空格。
// 归一化是幂等的，对已归一化的文本再次调用结果不变。
func NormalizeText(s string) string {
	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		// 无点ı没有可剥离的附加符号，手动折叠成i，
		// 否则同一个词大小写不同会归一出两种结果
		if r == 'ı' {
			r = 'i'
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeBoolean 判断题答案归一化，支持英文和土耳其语的常见写法。
// 无法识别的输入原样返回（小写去空白后），留给相等比较自然判错。
func NormalizeBoolean(s string) string {
	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	// 无点ı无法由NFKD分解，同NormalizeText一样手动折叠，
	// 否则yanlıs匹配不到yanlis
	folded = strings.ReplaceAll(folded, "ı", "i")
	switch folded {
	case "true", "t", "1", "yes", "y", "dogru":
		return "true"
	case "false", "f", "0", "no", "n", "yanlis":
		return "false"
	}
	return folded
}
