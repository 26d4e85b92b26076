package customer

import "testing"

func TestPhoneDigitsOf(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"(555) 123-4567", "5551234567"},
		{"555.123.4567", "5551234567"},
		{"+86 138 0000 1111", "8613800001111"},
		{"no digits", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := PhoneDigitsOf(c.in); got != c.want {
			t.Fatalf("PhoneDigitsOf(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
