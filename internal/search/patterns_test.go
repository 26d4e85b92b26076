package search

import (
	"strings"
	"testing"
)

func containsPattern(ps []string, want string) bool {
	for _, p := range ps {
		if p == want {
			return true
		}
	}
	return false
}

func TestBuildPatternsDeletionVariants(t *testing.T) {
	p := BuildPatterns(NormalizeTerm("ABCD"))
	// 词本身 + 每个单字符删除变体
	for _, want := range []string{"ABCD", "BCD", "ACD", "ABD", "ABC"} {
		if !containsPattern(p.Text, want) {
			t.Fatalf("expected pattern %q in %v", want, p.Text)
		}
	}
}

func TestBuildPatternsShortTermNoVariants(t *testing.T) {
	p := BuildPatterns(NormalizeTerm("ABC"))
	if !containsPattern(p.Text, "ABC") {
		t.Fatalf("expected base pattern, got %v", p.Text)
	}
	for _, pat := range p.Text {
		if len(pat) < len("ABC") {
			t.Fatalf("3-char term must not generate deletion variants, got %v", p.Text)
		}
	}
}

func TestBuildPatternsTokens(t *testing.T) {
	p := BuildPatterns(NormalizeTerm("John Smith"))
	if !containsPattern(p.Text, "John Smith") {
		t.Fatalf("expected full term pattern, got %v", p.Text)
	}
	if !containsPattern(p.Text, "John") || !containsPattern(p.Text, "Smith") {
		t.Fatalf("expected both tokens searched independently, got %v", p.Text)
	}
}

func TestBuildPatternsDigits(t *testing.T) {
	p := BuildPatterns(NormalizeTerm("555-1234"))
	if !containsPattern(p.Digit, "5551234") {
		t.Fatalf("expected digits pattern, got %v", p.Digit)
	}
	if !containsPattern(p.Digit, "551234") {
		t.Fatalf("expected deletion variant of digits, got %v", p.Digit)
	}
}

func TestBuildPatternsEmpty(t *testing.T) {
	if p := BuildPatterns(NormalizeTerm("a")); !p.Empty() {
		t.Fatalf("1-char term must generate no patterns, got %+v", p)
	}
}

func TestEscapeLike(t *testing.T) {
	got := EscapeLike(`AB%1_2\`)
	if got != `AB\%1\_2\\` {
		t.Fatalf("EscapeLike mismatch: %q", got)
	}
	if strings.Contains(strings.ReplaceAll(got, `\%`, ""), "%") {
		t.Fatalf("unescaped wildcard left in %q", got)
	}
}
