package search

import (
	"strings"
	"unicode/utf8"

	"github.com/GarageLink/GarageLink/internal/customer"
	"github.com/agnivade/levenshtein"
)

const (
	// containmentClamp 子串包含时距离的上限：包含是比编辑距离强得多的信号，
	// 3 字符的车牌片段落在 7 字符车牌里应当接近满分。
	containmentClamp = 0.05
	// phoneDiscount 电话通道的折扣：电话命中弱于车牌/姓名命中。
	phoneDiscount = 0.9
)

// Score 计算查询词与候选的相似度，落在 [0,1]，1 为完美/包含命中。
// 纯函数：相同输入必得相同输出，排序因此可复现。
func Score(termUpper, termDigits string, c Candidate) float64 {
	best := 2.0 // 大于任何合法归一化距离
	compared := false

	if termUpper != "" {
		for _, field := range compareFields(c) {
			d := normalizedDistance(termUpper, field)
			if strings.Contains(field, termUpper) || strings.Contains(termUpper, field) {
				if d > containmentClamp {
					d = containmentClamp
				}
			}
			compared = true
			if d < best {
				best = d
			}
		}
	}

	// 电话通道：独立于文本通道，只在有数字投影且候选有车主电话时参与。
	if termDigits != "" && c.Customer != nil {
		if pd := customer.PhoneDigitsOf(c.Customer.Phone); pd != "" {
			d := normalizedDistance(termDigits, pd) * phoneDiscount
			compared = true
			if d < best {
				best = d
			}
		}
	}

	if !compared {
		return 0
	}
	if best < 0 {
		best = 0
	}
	if best > 1 {
		best = 1
	}
	return 1 - best
}

// compareFields 候选的可比字段：大写车牌、大写“厂牌 型号”、大写车主姓名。
func compareFields(c Candidate) []string {
	fields := make([]string, 0, 3)
	if p := strings.ToUpper(c.Vehicle.PlateNumber); p != "" {
		fields = append(fields, p)
	}
	if mm := strings.TrimSpace(c.Vehicle.Make + " " + c.Vehicle.Model); mm != "" {
		fields = append(fields, strings.ToUpper(mm))
	}
	if c.Customer != nil {
		if n := strings.ToUpper(c.Customer.Name); n != "" {
			fields = append(fields, n)
		}
	}
	return fields
}

// normalizedDistance 编辑距离除以较长串的长度，得到与长度无关的 [0,1] 距离。
func normalizedDistance(a, b string) float64 {
	d := levenshtein.ComputeDistance(a, b)
	m := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > m {
		m = n
	}
	if m < 1 {
		m = 1
	}
	return float64(d) / float64(m)
}
