package search

import "strings"

// 模式生成的长度门槛：
// - 文本基础模式至少 2 个字符（单字符 LIKE 几乎等于全表扫描）
// - 数字基础模式至少 3 位
// - 长度 >= 4 的词才生成单字符删除变体，且变体至少 3 个字符
const (
	minTextPattern   = 2
	minDigitPattern  = 3
	minDeletionBase  = 4
	minDeletionAfter = 3
)

// Patterns 候选抓取用的两族子串模式（文本 / 数字），互相独立、并集使用。
type Patterns struct {
	Text  []string // 匹配车牌 / 厂牌 / 型号 / 车主姓名
	Digit []string // 匹配车主电话的纯数字投影
}

// Empty 两族都为空时抓取阶段直接返回空候选，避免无过滤的全表扫描。
func (p Patterns) Empty() bool {
	return len(p.Text) == 0 && len(p.Digit) == 0
}

// BuildPatterns 从归一化查询词生成抓取模式：
// - 文本族：词本身；各长度 >= 3 的空白分隔 token；单字符删除变体（容错拼写）
// - 数字族：对纯数字投影应用同样的“本身 + 单字符删除”方案
func BuildPatterns(t Term) Patterns {
	var p Patterns

	seen := make(map[string]struct{})
	addText := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		p.Text = append(p.Text, s)
	}

	if len([]rune(t.Norm)) >= minTextPattern {
		addText(t.Norm)
	}
	for _, tok := range strings.Fields(t.Norm) {
		if len([]rune(tok)) >= minDeletionAfter {
			addText(tok)
		}
	}
	for _, v := range deletionVariants(t.Norm) {
		addText(v)
	}

	seenD := make(map[string]struct{})
	addDigit := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seenD[s]; ok {
			return
		}
		seenD[s] = struct{}{}
		p.Digit = append(p.Digit, s)
	}

	if len(t.Digits) >= minDigitPattern {
		addDigit(t.Digits)
	}
	for _, v := range deletionVariants(t.Digits) {
		addDigit(v)
	}

	return p
}

// deletionVariants 生成 s 的全部单字符删除变体。
// 仅当 len(s) >= 4 时生成，且变体长度需保持 >= 3。
func deletionVariants(s string) []string {
	runes := []rune(s)
	if len(runes) < minDeletionBase || len(runes)-1 < minDeletionAfter {
		return nil
	}
	out := make([]string, 0, len(runes))
	for i := range runes {
		v := make([]rune, 0, len(runes)-1)
		v = append(v, runes[:i]...)
		v = append(v, runes[i+1:]...)
		out = append(out, string(v))
	}
	return out
}

// EscapeLike 转义 LIKE 的通配元字符，保证用户输入的 % / _ 按字面匹配。
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
