package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	cases := []struct {
		m    Money
		want string
	}{
		{Money{Cents: 1234}, "12.34"},
		{Money{Cents: 100000}, "1000.00"},
		{Money{Cents: 5}, "0.05"},
		{Money{Cents: -50}, "-0.50"},
	}
	for _, tc := range cases {
		b, err := tc.m.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal %d: %v", tc.m.Cents, err)
		}
		if string(b) != tc.want {
			t.Fatalf("marshal %d = %s, want %s", tc.m.Cents, b, tc.want)
		}
	}

	var m Money
	if err := m.UnmarshalJSON([]byte("1000")); err != nil || m.Cents != 100000 {
		t.Fatalf("unmarshal number: cents=%d err=%v", m.Cents, err)
	}
	if err := m.UnmarshalJSON([]byte(`"300.5"`)); err != nil || m.Cents != 30050 {
		t.Fatalf("unmarshal quoted: cents=%d err=%v", m.Cents, err)
	}
	if err := m.UnmarshalJSON([]byte("0")); err != nil || m.Cents != 0 {
		t.Fatalf("unmarshal zero: cents=%d err=%v", m.Cents, err)
	}
	if err := m.UnmarshalJSON([]byte("-3")); err == nil {
		t.Fatalf("expected error for negative wire amount")
	}
}

func TestFormatBRL(t *testing.T) {
	if got := (Money{Cents: 123456}).FormatBRL(); got != "R$ 1234,56" {
		t.Fatalf("got %q", got)
	}
	if got := (Money{Cents: -50}).FormatBRL(); got != "-R$ 0,50" {
		t.Fatalf("got %q", got)
	}
}
