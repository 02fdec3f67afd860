package service

import "testing"

func TestNormalizeDetailLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"kisa", "kisa"},
		{"Kısa", "kisa"},
		{"orta", "orta"},
		{"detayli", "detayli"},
		{"Detaylı", "detayli"},
		{"cok_detayli", "cok_detayli"},
		{"Çok Detaylı", "cok_detayli"},
		// 未知档位回退到orta
		{"", "orta"},
		{"bilinmeyen", "orta"},
	}
	for _, tt := range tests {
		if got := NormalizeDetailLevel(tt.input); got != tt.want {
			t.Errorf("NormalizeDetailLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDetailInstructionsCoverAllLevels(t *testing.T) {
	for _, level := range []string{"kisa", "orta", "detayli", "cok_detayli"} {
		if _, ok := detailInstructions[level]; !ok {
			t.Errorf("missing instruction for level %q", level)
		}
	}
}
