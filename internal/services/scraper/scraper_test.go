package scraper

import "testing"

const listPage = `<html><body>
<table id="main-table">
<thead><tr><th>No.</th><th class="sym">Symbol</th><th>Name</th></tr></thead>
<tbody>
<tr><td>1</td><td class="sym"><a href="/stocks/aapl/">AAPL</a></td><td>Apple</td></tr>
<tr><td>2</td><td class="sym"><a href="/stocks/brk.b/">brk.b</a></td><td>Berkshire</td></tr>
<tr><td>3</td><td class="sym"><a href="/stocks/"> </a></td><td>blank</td></tr>
<tr><td>4</td><td class="sym"><a href="/stocks/">SYMBOL</a></td><td>header artifact</td></tr>
<tr><td>5</td><td class="sym"><a href="/stocks/msft/"> msft </a></td><td>Microsoft</td></tr>
</tbody>
</table>
<table id="other-table"><tbody>
<tr><td class="sym"><a href="/x/">NOPE</a></td></tr>
</tbody></table>
</body></html>`

func TestParseSymbolTable(t *testing.T) {
	syms, err := ParseSymbolTable([]byte(listPage))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"AAPL", "BRK-B", "MSFT"}
	if len(syms) != len(want) {
		t.Fatalf("symbols = %v, want %v", syms, want)
	}
	for i, w := range want {
		if syms[i] != w {
			t.Fatalf("symbols[%d] = %q, want %q", i, syms[i], w)
		}
	}
}

func TestParseSymbolTableEmpty(t *testing.T) {
	syms, err := ParseSymbolTable([]byte("<html><body><p>maintenance</p></body></html>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(syms) != 0 {
		t.Fatalf("expected no symbols, got %v", syms)
	}
}
