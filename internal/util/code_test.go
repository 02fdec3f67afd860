package util

import (
	"strings"
	"testing"
)

func TestGenerateInviteCodeLength(t *testing.T) {
	for _, n := range []int{4, 8, 12} {
		if code := GenerateInviteCode(n); len(code) != n {
			t.Errorf("length %d: got %q (%d chars)", n, code, len(code))
		}
	}
}

func TestGenerateInviteCodeAlphabet(t *testing.T) {
	for i := 0; i < 20; i++ {
		code := GenerateInviteCode(8)
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
	}
}

func TestGenerateInviteCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateInviteCode(8)] = true
	}
	// 50个8位随机码全部相同的概率可以忽略
	if len(seen) < 2 {
		t.Error("expected distinct codes across generations")
	}
}
