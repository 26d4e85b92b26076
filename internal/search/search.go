// Package search 实现前台查车的模糊查找核心：
// 输入一段自由文本（车牌片段 / 电话 / 姓名），输出至多一个唯一命中
// 和一组按相似度排序的候选建议。
package search

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/GarageLink/GarageLink/internal/customer"
	"github.com/GarageLink/GarageLink/internal/repair"
)

// ErrEmptyTerm 空白查询词属于调用方错误，不是合法的零结果查找。
var ErrEmptyTerm = errors.New("search term is empty")

const (
	defaultLimit = 5
	// overFetchFactor 抓取阶段刻意放大的取数倍率，给打分排序留足素材。
	overFetchFactor = 6
	// seedScore 种子建议的哨兵分：解析阶段的发现优先于一切打分候选。
	seedScore = 1.0
)

// Reason 建议的归因标签，按信号强度递减，仅用于 UI 展示，不参与排序。
type Reason string

const (
	ReasonPlate   Reason = "plate"   // 查询词是车牌的子串
	ReasonPhone   Reason = "phone"   // 数字投影是车主电话的子串
	ReasonName    Reason = "name"    // 查询词是车主姓名的子串
	ReasonVehicle Reason = "vehicle" // 查询词是厂牌/型号的子串
	ReasonPartial Reason = "partial" // 仅通过删除变体/编辑距离浮出
)

// ResolvedMatch 唯一确定的命中：车辆 + 车主（可缺失）+ 急加载的维修历史。
type ResolvedMatch struct {
	Candidate
	Services []repair.Order `json:"services"`
}

// Suggestion 一条候选建议。
type Suggestion struct {
	Candidate
	Reason Reason  `json:"reason"`
	Score  float64 `json:"score"`
}

// Result 一次查找的完整输出。
type Result struct {
	Match       *ResolvedMatch `json:"match"`
	Suggestions []Suggestion   `json:"suggestions"`
}

// Service 查找核心。无共享可变状态，单次调用只依赖局部量，可并发使用。
type Service struct {
	store Store
	limit int // 建议条数默认上限
}

func NewService(store Store, limit int) *Service {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Service{store: store, limit: limit}
}

// Search 按查询词查车。
// 流程：归一化 → 主命中解析（可短路）→ 模糊抓取 → 打分 → 建议装配。
// 记录层错误原样上抛；查无结果返回 match=nil + 空建议，不是错误。
func (s *Service) Search(ctx context.Context, rawTerm string, limit int) (*Result, error) {
	t := NormalizeTerm(rawTerm)
	if t.Norm == "" {
		return nil, ErrEmptyTerm
	}
	if limit <= 0 {
		limit = s.limit
	}

	result, seeds, err := s.resolve(ctx, t)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = &Result{}
	}

	excludeID := ""
	if result.Match != nil {
		excludeID = result.Match.Vehicle.ID
	}

	suggestions, seen := foldSeeds(seeds, excludeID)

	if len(suggestions) < limit {
		patterns := BuildPatterns(t)
		if !patterns.Empty() {
			cands, err := s.store.FuzzyCandidates(ctx, patterns, overFetchFactor*limit)
			if err != nil {
				return nil, err
			}
			suggestions = foldCandidates(suggestions, seen, cands, t, excludeID, limit)
		}
	}

	result.Suggestions = rank(suggestions, limit)
	return result, nil
}

// foldSeeds 把种子建议装入新累加器，跳过已命中车辆并按车辆 ID 去重。
func foldSeeds(seeds []Suggestion, excludeID string) ([]Suggestion, map[string]struct{}) {
	out := make([]Suggestion, 0, len(seeds))
	seen := make(map[string]struct{}, len(seeds))
	for _, sg := range seeds {
		id := sg.Vehicle.ID
		if id == excludeID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, sg)
	}
	return out, seen
}

// foldCandidates 给抓取到的候选打分、归因并并入累加器。
// 累加器到达 limit 即提前停止：抓取结果已按建档时间倒序，
// 靠前的候选平均不劣于靠后的，继续打分是浪费。
func foldCandidates(acc []Suggestion, seen map[string]struct{}, cands []Candidate, t Term, excludeID string, limit int) []Suggestion {
	for _, c := range cands {
		if len(acc) >= limit {
			break
		}
		id := c.Vehicle.ID
		if id == excludeID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		acc = append(acc, Suggestion{
			Candidate: c,
			Reason:    classifyReason(t, c),
			Score:     Score(t.Upper, t.Digits, c),
		})
	}
	return acc
}

// rank 按分数降序排序（同分新车在前），截断到 limit。
func rank(suggestions []Suggestion, limit int) []Suggestion {
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Vehicle.CreatedAt.After(suggestions[j].Vehicle.CreatedAt)
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// classifyReason 按信号强度从高到低取第一个成立的归因。
func classifyReason(t Term, c Candidate) Reason {
	if t.Upper != "" && strings.Contains(strings.ToUpper(c.Vehicle.PlateNumber), t.Upper) {
		return ReasonPlate
	}
	if t.Digits != "" && c.Customer != nil {
		if pd := customer.PhoneDigitsOf(c.Customer.Phone); pd != "" && strings.Contains(pd, t.Digits) {
			return ReasonPhone
		}
	}
	if t.Upper != "" && c.Customer != nil &&
		strings.Contains(strings.ToUpper(c.Customer.Name), t.Upper) {
		return ReasonName
	}
	if t.Upper != "" &&
		(strings.Contains(strings.ToUpper(c.Vehicle.Make), t.Upper) ||
			strings.Contains(strings.ToUpper(c.Vehicle.Model), t.Upper)) {
		return ReasonVehicle
	}
	return ReasonPartial
}
