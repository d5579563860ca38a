package textutil

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	got := CleanText("  Senior Go   Engineer \n")
	if got != "Senior Go Engineer" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeLocation(t *testing.T) {
	got := NormalizeLocation(" Berlin ,  berlin, Germany ,, ")
	if got != "Berlin, Germany" {
		t.Fatalf("got %q", got)
	}
}

func TestPlainTextStripsMarkup(t *testing.T) {
	got := PlainText("<p>Build <b>APIs</b></p><script>alert(1)</script><ul><li>Go</li><li>SQL</li></ul>")
	if got != "Build APIs Go SQL" {
		t.Fatalf("got %q", got)
	}
	if PlainText("no markup  here") != "no markup here" {
		t.Fatal("plain input should only be cleaned")
	}
}

func TestExcerpt(t *testing.T) {
	long := strings.Repeat("word ", 100)
	got := Excerpt(long, 42)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("missing ellipsis: %q", got)
	}
	if n := len([]rune(got)); n > 43 {
		t.Fatalf("excerpt too long: %d", n)
	}
	if Excerpt("short", 42) != "short" {
		t.Fatal("short text should be untouched")
	}
}
