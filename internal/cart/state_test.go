package cart

import (
	"errors"
	"testing"
)

func TestStateRoundTrip(t *testing.T) {
	in := []Line{
		{Product: product(7, "19.99"), Quantity: 3},
		{Product: product(2, "5"), Quantity: 1},
	}
	in[0].Name = "Linen Throw"
	in[0].Featured = true

	data, err := EncodeState(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, dropped, err := DecodeState(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dropped != 0 {
		t.Fatalf("expected nothing dropped, got %d", dropped)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d lines, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].ID != in[i].ID || out[i].Quantity != in[i].Quantity || !out[i].Price.Equal(in[i].Price) {
			t.Fatalf("line %d mismatch: %+v vs %+v", i, out[i], in[i])
		}
	}
	if out[0].Name != "Linen Throw" || !out[0].Featured {
		t.Fatalf("expected snapshot fields to survive, got %+v", out[0])
	}
}

func TestEncodeEmptyState(t *testing.T) {
	data, err := EncodeState(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(data) != `{"state":{"cart":[]},"version":0}` {
		t.Fatalf("unexpected encoding %s", data)
	}
	out, _, err := DecodeState(data)
	if err != nil || len(out) != 0 {
		t.Fatalf("expected empty cart, got %v err=%v", out, err)
	}
}

func TestDecodeBlankIsEmpty(t *testing.T) {
	out, _, err := DecodeState([]byte("  \n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty cart, got %v", out)
	}
}

func TestDecodeAcceptsNumericPrices(t *testing.T) {
	raw := `{"state":{"cart":[{"id":1,"name":"Aurora","price":199.99,"category":"Electronics","image":"/a.jpg","featured":true,"inStock":true,"rating":4.8,"reviews":10,"quantity":2}]},"version":0}`
	out, _, err := DecodeState([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Price.String() != "199.99" || out[0].Quantity != 2 {
		t.Fatalf("unexpected lines %+v", out)
	}
}

func TestDecodeDropsInvalidLines(t *testing.T) {
	raw := `{"state":{"cart":[
		{"id":1,"price":1,"quantity":2},
		{"id":2,"price":1,"quantity":0},
		{"id":1,"price":9,"quantity":4},
		{"id":3,"price":1,"quantity":-1},
		{"id":4,"price":1,"quantity":1}
	]},"version":0}`
	out, dropped, err := DecodeState([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dropped != 3 {
		t.Fatalf("expected 3 dropped lines, got %d", dropped)
	}
	assertLines(t, out, [2]int{1, 2}, [2]int{4, 1})
}

func TestDecodeMalformed(t *testing.T) {
	for _, raw := range []string{"{", `{"state":null}`, `{"state":{"cart":[]},"version":1}`, `{"state":{"cart":"x"}}`} {
		if _, _, err := DecodeState([]byte(raw)); !errors.Is(err, ErrMalformedState) {
			t.Fatalf("%s: expected ErrMalformedState, got %v", raw, err)
		}
	}
}
