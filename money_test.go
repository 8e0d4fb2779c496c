package hesabna

import (
	"encoding/json"
	"testing"
)

func TestAmountArithmetic(t *testing.T) {
	a, b := A(10.10), A(0.20)
	if got := a.Add(b); !got.Equal(A(10.30)) {
		t.Errorf("10.10 + 0.20 = %s", got) // no float drift
	}
	if got := a.Sub(b); !got.Equal(A(9.90)) {
		t.Errorf("10.10 - 0.20 = %s", got)
	}
	if got := A(50).Sub(A(80)).Floor0(); !got.IsZero() {
		t.Errorf("Floor0 = %s, want 0", got)
	}
	if got := A(50).Sub(A(20)).Floor0(); !got.Equal(A(30)) {
		t.Errorf("Floor0 clipped a positive value to %s", got)
	}
}

func TestParseAmount(t *testing.T) {
	if _, err := ParseAmount("12.50"); err != nil {
		t.Error(err)
	}
	if _, err := ParseAmount("abc"); err == nil {
		t.Error("garbage amount accepted")
	}
	if _, err := ParseAmount(""); err == nil {
		t.Error("empty amount accepted")
	}
}

func TestAmountJSONIsANumber(t *testing.T) {
	b, err := json.Marshal(A(42.5))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "42.5" {
		t.Errorf("marshals as %s, want a bare number", b)
	}
	var back Amount
	if err := json.Unmarshal([]byte("42.5"), &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(A(42.5)) {
		t.Errorf("roundtrip = %s", back)
	}
}
