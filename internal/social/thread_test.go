package social

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/newsroom/internal/extract"
	"github.com/ppiankov/newsroom/internal/model"
)

func TestBuildThread_FromEssay(t *testing.T) {
	essay := extract.ParseEssay("# T\n\nHook.\n\n- point one\n- point two")

	thread := BuildThread(essay, DefaultMaxUnitLength)

	expected := model.Thread{
		"T\n\nA thread 🧵👇",
		"Hook....",
		"1/ point one",
		"2/ point two",
		threadCTA,
	}
	if diff := cmp.Diff(expected, thread); diff != "" {
		t.Errorf("thread mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildThread_NoKeyPoints(t *testing.T) {
	essay := model.Essay{Title: "Title", Hook: "A hook."}

	thread := BuildThread(essay, DefaultMaxUnitLength)

	if len(thread) < 3 {
		t.Fatalf("Expected at least 3 units, got %d", len(thread))
	}
	if thread[len(thread)-1] != threadCTA {
		t.Errorf("Expected CTA last, got %q", thread[len(thread)-1])
	}
}

func TestBuildThread_NoHook(t *testing.T) {
	thread := BuildThread(model.Essay{Title: "Title"}, DefaultMaxUnitLength)

	if len(thread) != 2 {
		t.Fatalf("Expected title and CTA only, got %d units", len(thread))
	}
}

func TestBuildThread_UnitsWithinBudget(t *testing.T) {
	essay := model.Essay{
		Title: "Title",
		Hook:  strings.Repeat("é", 600),
		KeyPoints: []string{
			strings.Repeat("ü", 400),
			strings.Repeat("word ", 100),
			"short",
		},
	}

	thread := BuildThread(essay, DefaultMaxUnitLength)

	for i, unit := range thread {
		if n := utf8.RuneCountInString(unit); n > DefaultMaxUnitLength {
			t.Errorf("unit %d has %d runes, over budget", i, n)
		}
		if !utf8.ValidString(unit) {
			t.Errorf("unit %d is not valid UTF-8", i)
		}
	}

	if got := utf8.RuneCountInString(thread[1]); got != DefaultMaxUnitLength-10+3 {
		t.Errorf("Expected hook unit of %d runes, got %d", DefaultMaxUnitLength-7, got)
	}
	if got := utf8.RuneCountInString(thread[2]); got != DefaultMaxUnitLength {
		t.Errorf("Expected truncated key point of %d runes, got %d", DefaultMaxUnitLength, got)
	}
	if !strings.HasSuffix(thread[2], "...") {
		t.Errorf("Expected truncated key point to end with ellipsis, got %q", thread[2])
	}
	if thread[4] != "3/ short" {
		t.Errorf("Expected short key point untouched, got %q", thread[4])
	}
}

func TestBuildThread_TitleFallback(t *testing.T) {
	tests := []struct {
		name      string
		titleLen  int
		expectRaw bool
	}{
		{"fits with thread marker", 260, false},
		{"falls back to short marker", 270, true},
		{"fallback is not re-checked", 300, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title := strings.Repeat("x", tt.titleLen)
			thread := BuildThread(model.Essay{Title: title}, DefaultMaxUnitLength)

			if tt.expectRaw {
				if thread[0] != title+"\n\n🧵👇" {
					t.Errorf("Expected fallback opener, got %q", thread[0])
				}
			} else if thread[0] != title+"\n\nA thread 🧵👇" {
				t.Errorf("Expected full opener, got %q", thread[0])
			}
		})
	}
}

func TestBuildThread_FiveKeyPointsMax(t *testing.T) {
	essay := model.Essay{
		Title:     "T",
		KeyPoints: []string{"a", "b", "c", "d", "e", "f", "g"},
	}

	thread := BuildThread(essay, DefaultMaxUnitLength)

	if len(thread) != 7 {
		t.Fatalf("Expected 7 units, got %d", len(thread))
	}
	if thread[5] != "5/ e" {
		t.Errorf("Expected last key point '5/ e', got %q", thread[5])
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		n        int
		expected string
	}{
		{"hello", 3, "hel"},
		{"hello", 10, "hello"},
		{"日本語テキスト", 3, "日本語"},
		{"hello", 0, ""},
		{"hello", -2, ""},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q", tt.in, tt.n, got, tt.expected)
		}
	}
}
