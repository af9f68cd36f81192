package validation

import (
	"strings"
	"testing"
)

func TestNormalizeContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		want     string
		expected bool
	}{
		{"Plain text", "hello", "hello", true},
		{"Trimmed", "  hi there \n", "hi there", true},
		{"Empty", "", "", false},
		{"Whitespace only", "   \t\n", "", false},
		{"Exactly max", strings.Repeat("a", MaxMessageRunes), strings.Repeat("a", MaxMessageRunes), true},
		{"Over max", strings.Repeat("a", MaxMessageRunes+1), strings.Repeat("a", MaxMessageRunes+1), false},
		{"Multibyte at max", strings.Repeat("é", MaxMessageRunes), strings.Repeat("é", MaxMessageRunes), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeContent(tt.content, MaxMessageRunes)
			if ok != tt.expected {
				t.Errorf("NormalizeContent ok = %v, want %v", ok, tt.expected)
			}
			if got != tt.want {
				t.Errorf("NormalizeContent = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeContentCustomMax(t *testing.T) {
	if _, ok := NormalizeContent("abcdef", 5); ok {
		t.Errorf("expected content over custom max to be rejected")
	}
	if _, ok := NormalizeContent("abcde", 5); !ok {
		t.Errorf("expected content at custom max to be accepted")
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("ü", 250)
	got := Preview(long)
	if n := len([]rune(got)); n != PreviewRunes {
		t.Errorf("Preview rune count = %d, want %d", n, PreviewRunes)
	}
	if Preview("short") != "short" {
		t.Errorf("Preview should not alter short strings")
	}
}

func TestNormalizeGroupName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Valid", "Cohort 7", true},
		{"Empty", "", false},
		{"Blank", "    ", false},
		{"Max length", strings.Repeat("x", MaxGroupNameRunes), true},
		{"Too long", strings.Repeat("x", MaxGroupNameRunes+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := NormalizeGroupName(tt.input)
			if ok != tt.expected {
				t.Errorf("NormalizeGroupName(%q) = %v, want %v", tt.input, ok, tt.expected)
			}
		})
	}
}

func TestNormalizeGroupEmoji(t *testing.T) {
	if e, ok := NormalizeGroupEmoji(" "); !ok || e != nil {
		t.Errorf("blank emoji should normalize to nil")
	}
	if e, ok := NormalizeGroupEmoji("🚀"); !ok || e == nil || *e != "🚀" {
		t.Errorf("single emoji should be accepted")
	}
	if _, ok := NormalizeGroupEmoji(strings.Repeat("🚀", 17)); ok {
		t.Errorf("long emoji string should be rejected")
	}
}

func TestParticipantSet(t *testing.T) {
	set := ParticipantSet(3, []uint{5, 3, 0, 5, 1})
	want := []uint{1, 3, 5}
	if len(set) != len(want) {
		t.Fatalf("ParticipantSet = %v, want %v", set, want)
	}
	for i := range want {
		if set[i] != want[i] {
			t.Errorf("ParticipantSet[%d] = %d, want %d", i, set[i], want[i])
		}
	}

	if MinParticipants(ParticipantSet(3, nil), 2) {
		t.Errorf("creator alone must not satisfy the minimum")
	}
	if MinParticipants(ParticipantSet(3, []uint{3, 3}), 2) {
		t.Errorf("duplicates of the creator must not satisfy the minimum")
	}
	if !MinParticipants(ParticipantSet(3, []uint{4}), 2) {
		t.Errorf("creator plus one member should satisfy the minimum")
	}

	if got := ParticipantSet(0, []uint{0, 9, 2, 9}); len(got) != 2 || got[0] != 2 || got[1] != 9 {
		t.Errorf("ParticipantSet without creator = %v, want [2 9]", got)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 50}, {-3, 50}, {1, 1}, {100, 100}, {101, 100}, {42, 42},
	}
	for _, tt := range tests {
		if got := ClampLimit(tt.in, DefaultPageSize, MaxPageSize); got != tt.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello", "%hello%"},
		{" 50% ", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`back\slash`, `%back\\slash%`},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := ContainsPattern(tt.in); got != tt.want {
			t.Errorf("ContainsPattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
