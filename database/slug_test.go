package database

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Hello, World!", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple   spaces", "multiple-spaces"},
		{"MiXeD CaSe TiTle", "mixed-case-title"},
		{"What's New (2024)!", "whats-new-2024"},
		{"100% Go + Postgres!", "100-go-postgres"},
		{"dots.and.ats@removed", "dotsandatsremoved"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.title); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestSlugifyStripsPunctuationSetWithoutSeparator(t *testing.T) {
	// Characters in the strip set vanish without leaving a hyphen behind.
	for _, r := range slugStripSet {
		title := fmt.Sprintf("foo%cbar", r)
		if got := Slugify(title); got != "foobar" {
			t.Errorf("Slugify(%q) = %q, want %q", title, got, "foobar")
		}
	}
}

func TestGenerateSlugAt(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	got := GenerateSlugAt("My First Post", now)
	want := "my-first-post-1700000000123"
	if got != want {
		t.Errorf("GenerateSlugAt = %q, want %q", got, want)
	}

	// Pure function of title and clock.
	if again := GenerateSlugAt("My First Post", now); again != got {
		t.Errorf("GenerateSlugAt is not deterministic: %q vs %q", got, again)
	}
}

func TestGenerateSlugAtDistinctTitlesSameMillisecond(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	a := GenerateSlugAt("First Title", now)
	b := GenerateSlugAt("Second Title", now)
	if a == b {
		t.Errorf("distinct titles produced the same slug %q", a)
	}
}

func TestGenerateSlugAtEmptyTitle(t *testing.T) {
	now := time.UnixMilli(42)
	got := GenerateSlugAt("!!!", now)
	if !strings.HasPrefix(got, "post-") {
		t.Errorf("GenerateSlugAt on an all-stripped title = %q, want post- prefix", got)
	}
}
