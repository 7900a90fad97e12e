package ui

import "testing"

func TestSourceColor(t *testing.T) {
	if got := SourceColor("Jobberman"); got != "#00796b" {
		t.Fatalf("SourceColor(Jobberman) = %q", got)
	}
	if got := SourceColor(" Jooble "); got != "#1d6ae5" {
		t.Fatalf("SourceColor should trim and lowercase, got %q", got)
	}
	if got := SourceColor("unknown board"); got != LinkColor {
		t.Fatalf("unknown source should fall back to the link color, got %q", got)
	}
}
