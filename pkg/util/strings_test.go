package util

import "testing"

func TestNormalizeSymbol(t *testing.T) {
	if got := NormalizeSymbol(" brk.b "); got != "BRK-B" {
		t.Fatalf("unexpected symbol %q", got)
	}
	if got := NormalizeSymbol("aapl"); got != "AAPL" {
		t.Fatalf("unexpected symbol %q", got)
	}
}

func TestNormalizeSymbolDropsHeaderRows(t *testing.T) {
	if got := NormalizeSymbol("Symbol"); got != "" {
		t.Fatalf("header row must normalize to empty, got %q", got)
	}
	if got := NormalizeSymbol("   "); got != "" {
		t.Fatalf("blank must normalize to empty, got %q", got)
	}
}
