package search

import (
	"strings"
	"unicode"
)

// Term 归一化后的查询词。
type Term struct {
	Raw    string // 原始输入
	Norm   string // 去首尾空白、内部空白折叠为单个空格
	Upper  string // Norm 的大写形式（打分/归因用）
	Digits string // 纯数字投影（电话通道用）

	// PlateLike 车牌启发式：去掉全部空白后长度 >= 4，且同时含字母和数字。
	// 车牌是精度最高的查找键，命中时直接短路，不走模糊匹配。
	PlateLike bool
}

// NormalizeTerm 清洗并归类原始查询词。
// 空白输入归一化为空串，调用方必须视为“未发起查找”而拒绝。
func NormalizeTerm(raw string) Term {
	norm := strings.Join(strings.Fields(raw), " ")

	var digits strings.Builder
	for _, r := range norm {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	return Term{
		Raw:       raw,
		Norm:      norm,
		Upper:     strings.ToUpper(norm),
		Digits:    digits.String(),
		PlateLike: looksLikePlate(norm),
	}
}

func looksLikePlate(norm string) bool {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, norm)

	if len([]rune(compact)) < 4 {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range compact {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
