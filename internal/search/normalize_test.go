package search

import "testing"

func TestNormalizeTerm(t *testing.T) {
	got := NormalizeTerm("  John   Smith ")
	if got.Norm != "John Smith" {
		t.Fatalf("expected collapsed term, got %q", got.Norm)
	}
	if got.Upper != "JOHN SMITH" {
		t.Fatalf("expected upper term, got %q", got.Upper)
	}
	if got.Digits != "" {
		t.Fatalf("expected no digits, got %q", got.Digits)
	}
	if got.PlateLike {
		t.Fatalf("pure letters must not look like a plate")
	}
}

func TestNormalizeTermEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		if got := NormalizeTerm(raw); got.Norm != "" {
			t.Fatalf("NormalizeTerm(%q).Norm = %q, want empty", raw, got.Norm)
		}
	}
}

func TestNormalizeTermDigits(t *testing.T) {
	got := NormalizeTerm("(555) 123-4567")
	if got.Digits != "5551234567" {
		t.Fatalf("digits projection mismatch: %q", got.Digits)
	}
	if got.PlateLike {
		t.Fatalf("digits-only term must not look like a plate")
	}
}

func TestLooksLikePlate(t *testing.T) {
	cases := []struct {
		term string
		want bool
	}{
		{"ABC1234", true},
		{"AB 1234", true}, // 空白压缩后判定
		{"AB1", false},    // 太短
		{"ABCD", false},   // 没有数字
		{"1234", false},   // 没有字母
		{"A1B2", true},
	}
	for _, c := range cases {
		if got := NormalizeTerm(c.term).PlateLike; got != c.want {
			t.Fatalf("PlateLike(%q) = %v, want %v", c.term, got, c.want)
		}
	}
}
