package service

import (
	"testing"

	"notedu_backend/internal/config"
)

func testRAG(defaultK int) *RAGService {
	return NewRAGService(config.RetrievalConfig{
		BaseURL:          "http://localhost:8001",
		CollectionPrefix: "ders_notlari",
		DefaultK:         defaultK,
	})
}

func TestCollectionFor(t *testing.T) {
	s := testRAG(4)
	if got := s.collectionFor(7); got != "ders_notlari_u7" {
		t.Errorf("collectionFor(7) = %q", got)
	}
	if got := s.collectionFor(123); got != "ders_notlari_u123" {
		t.Errorf("collectionFor(123) = %q", got)
	}
}

func TestDynamicK(t *testing.T) {
	s := testRAG(4)
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"short query widens", "fotosentez nedir", 6},
		{"three words still short", "hucre zari nedir", 6},
		{"long query default", "bitkilerde fotosentez sureci nasil gerceklesir anlat", 4},
		{"empty", "", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.DynamicK(tt.query); got != tt.want {
				t.Errorf("DynamicK(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestDynamicKZeroConfig(t *testing.T) {
	s := testRAG(0)
	if got := s.DynamicK("uzun bir soru cumlesi burada var"); got != 4 {
		t.Errorf("unset default_k must fall back to 4, got %d", got)
	}
}
