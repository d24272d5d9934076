package core

import "testing"

func TestParseDecimalToMinor(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12", 1200, true},
		{"0.01", 1, true},
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{"", 0, false},
		{"0", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToMinor(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q: unexpected error %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("%q: got %d, want %d", tc.in, got, tc.want)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestAmountMinorFromNumber(t *testing.T) {
	if got, err := AmountMinorFromNumber(500); err != nil || got != 500 {
		t.Fatalf("got %d, %v", got, err)
	}
	if _, err := AmountMinorFromNumber(5.5); err == nil {
		t.Fatal("expected error for fractional minor amount")
	} else if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}
