package patch

import (
	"encoding/json"
	"testing"
)

type payload struct {
	Name   Field[string] `json:"name"`
	Amount Field[int]    `json:"amount"`
}

func TestFieldAbsent(t *testing.T) {
	var p payload
	if err := json.Unmarshal([]byte(`{}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if p.Name.Present() {
		t.Error("expected name to be absent")
	}
	if p.Name.Null() {
		t.Error("absent field must not report null")
	}
	if _, ok := p.Name.Value(); ok {
		t.Error("absent field must not report a value")
	}
	if p.Name.Ptr() != nil {
		t.Error("absent field must have nil pointer")
	}
}

func TestFieldNull(t *testing.T) {
	var p payload
	if err := json.Unmarshal([]byte(`{"name": null}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !p.Name.Present() {
		t.Error("expected name to be present")
	}
	if !p.Name.Null() {
		t.Error("expected name to be null")
	}
	if _, ok := p.Name.Value(); ok {
		t.Error("null field must not report a value")
	}
}

func TestFieldSet(t *testing.T) {
	var p payload
	if err := json.Unmarshal([]byte(`{"name": "Rent", "amount": 42}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	name, ok := p.Name.Value()
	if !ok || name != "Rent" {
		t.Errorf("expected name Rent, got %q (ok=%v)", name, ok)
	}
	amount, ok := p.Amount.Value()
	if !ok || amount != 42 {
		t.Errorf("expected amount 42, got %d (ok=%v)", amount, ok)
	}
	if p.Name.Null() {
		t.Error("set field must not report null")
	}
}

func TestFieldTypeMismatch(t *testing.T) {
	var p payload
	if err := json.Unmarshal([]byte(`{"amount": "not a number"}`), &p); err == nil {
		t.Error("expected unmarshal error for type mismatch")
	}
}

func TestConstructors(t *testing.T) {
	set := Set("hello")
	if !set.Present() || set.Null() {
		t.Error("Set must be present and non-null")
	}
	if v, _ := set.Value(); v != "hello" {
		t.Errorf("expected hello, got %q", v)
	}

	null := Null[string]()
	if !null.Present() || !null.Null() {
		t.Error("Null must be present and null")
	}
}
