package service

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"trims and lowers", "  Ankara  ", "ankara"},
		{"turkish diacritics", "Doğru", "dogru"},
		{"dotted capital I", "İstanbul", "istanbul"},
		{"mixed accents", "Çözümleme ĞÜŞÖÇ", "cozumleme gusoc"},
		{"dotless i folds to i", "Işık ışık", "isik isik"},
		{"strips punctuation", "foto-sentez, evet!", "fotosentez evet"},
		{"keeps digits and spaces", "madde 42 onemli", "madde 42 onemli"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{"Doğru", "  Çift  Boşluk  ", "fotosentez evet", "YANLIŞ!"}
	for _, in := range inputs {
		once := NormalizeText(in)
		twice := NormalizeText(once)
		if once != twice {
			t.Errorf("NormalizeText not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeBoolean(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"true", "true"},
		{"True", "true"},
		{"T", "true"},
		{"1", "true"},
		{"yes", "true"},
		{"Doğru", "true"},
		{"DOGRU", "true"},
		{"false", "false"},
		{"F", "false"},
		{"0", "false"},
		{"no", "false"},
		{"Yanlış", "false"},
		// 无点ı需要手动折叠，NFKD剥不掉
		{"yanlış", "false"},
		{"YANLIŞ", "false"},
		{"yanlis", "false"},
		{" doğru ", "true"},
		// 无法识别的输入原样透传
		{"maybe", "maybe"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeBoolean(tt.input); got != tt.want {
			t.Errorf("NormalizeBoolean(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
