package service

import (
	"strings"
	"testing"
)

func TestChunkTextEmpty(t *testing.T) {
	if got := chunkText("   \n\n  "); got != nil {
		t.Errorf("whitespace-only input: got %v, want nil", got)
	}
}

func TestChunkTextSingleParagraph(t *testing.T) {
	got := chunkText("Kisa bir paragraf.")
	if len(got) != 1 || got[0] != "Kisa bir paragraf." {
		t.Errorf("got %v, want the paragraph unchanged", got)
	}
}

func TestChunkTextGroupsParagraphs(t *testing.T) {
	text := "Birinci paragraf.\n\nIkinci paragraf.\n\n\n\nUcuncu paragraf."
	got := chunkText(text)
	if len(got) != 1 {
		t.Fatalf("short paragraphs must share a chunk, got %d chunks", len(got))
	}
	if !strings.Contains(got[0], "Birinci") || !strings.Contains(got[0], "Ucuncu") {
		t.Errorf("chunk missing paragraphs: %q", got[0])
	}
}

func TestChunkTextSplitsAtLimit(t *testing.T) {
	para := strings.Repeat("a", 600)
	text := para + "\n\n" + para + "\n\n" + para
	got := chunkText(text)
	// 600+600超过上限，每段各成一块
	if len(got) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(got))
	}
	for i, c := range got {
		if len(c) > chunkSize+2 {
			t.Errorf("chunk %d exceeds size limit: %d", i, len(c))
		}
	}
}

func TestChunkTextOversizedParagraph(t *testing.T) {
	text := strings.Repeat("b", 2500)
	got := chunkText(text)
	if len(got) < 3 {
		t.Fatalf("oversized paragraph must be windowed, got %d chunks", len(got))
	}
	for i, c := range got {
		if len(c) > chunkSize {
			t.Errorf("chunk %d exceeds chunk size: %d", i, len(c))
		}
	}
	// 滑动窗口带重叠，相邻块尾首相连
	if !strings.HasPrefix(got[1], strings.Repeat("b", chunkOverlap)) {
		t.Error("expected overlap between consecutive chunks")
	}
}
