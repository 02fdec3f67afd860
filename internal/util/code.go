package util

import "crypto/rand"

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateInviteCode 生成班级邀请码（大写字母+数字）。
// 唯一性由调用方在写入时校验，冲突则换码重试。
func GenerateInviteCode(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand在常见平台不会失败；兜底返回定长占位避免半成品码
		for i := range buf {
			buf[i] = 'A'
		}
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}
