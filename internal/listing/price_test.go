package listing

import (
	"encoding/json"
	"testing"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name       string
		display    string
		wantAmount int64
		wantOK     bool
	}{
		{name: "dollar with separators", display: "$650,000", wantAmount: 650000, wantOK: true},
		{name: "plain digits", display: "1250000", wantAmount: 1250000, wantOK: true},
		{name: "surrounding spaces", display: "  $ 400,000 ", wantAmount: 400000, wantOK: true},
		{name: "decimal cents", display: "$650,000.00", wantOK: false},
		{name: "words", display: "call for price", wantOK: false},
		{name: "empty", display: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := ParsePrice(tt.display)
			amount, ok := p.Amount()
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if ok && amount != tt.wantAmount {
				t.Errorf("amount: got %d, want %d", amount, tt.wantAmount)
			}
			if p.String() != tt.display {
				t.Errorf("display: got %q, want %q", p.String(), tt.display)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := map[int64]string{
		0:       "$0",
		950:     "$950",
		1000:    "$1,000",
		650000:  "$650,000",
		1800000: "$1,800,000",
		-25000:  "-$25,000",
	}

	for amount, want := range tests {
		if got := FormatAmount(amount); got != want {
			t.Errorf("FormatAmount(%d): got %q, want %q", amount, got, want)
		}
	}
}

func TestPrice_JSON(t *testing.T) {
	var p Price
	if err := json.Unmarshal([]byte(`"$725,500"`), &p); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if amount, ok := p.Amount(); !ok || amount != 725500 {
		t.Errorf("amount: got %d (ok=%v), want 725500", amount, ok)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"$725,500"` {
		t.Errorf("marshal: got %s", out)
	}

	if err := json.Unmarshal([]byte(`480000`), &p); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if p.String() != "$480,000" {
		t.Errorf("number display: got %q, want $480,000", p.String())
	}

	if err := json.Unmarshal([]byte(`true`), &p); err == nil {
		t.Error("expected error for boolean price")
	}
}
