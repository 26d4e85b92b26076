package search

import (
	"context"

	"github.com/GarageLink/GarageLink/internal/customer"
	"github.com/GarageLink/GarageLink/internal/vehicle"
)

// minPhoneDigits 电话通道的最小有效位数。
const minPhoneDigits = 7

// resolve 主命中解析，按固定优先级尝试把查询词解析为唯一一辆车：
//  1. 车牌样式的词 → 车牌精确命中（车牌唯一，单字段命中即可信）
//  2. 数字投影 >= 7 位 → 电话唯一命中且名下仅一辆车
//  3. 姓名精确命中唯一且名下仅一辆车
//
// 任何一级出现歧义（多客户同名 / 一人多车）都不自动裁决，
// 而是把涉及的车辆降级为种子建议，交给调用方展示。
func (s *Service) resolve(ctx context.Context, t Term) (*Result, []Suggestion, error) {
	var seeds []Suggestion

	if t.PlateLike {
		v, err := s.store.VehicleByPlate(ctx, t.Norm)
		if err != nil {
			return nil, nil, err
		}
		if v != nil {
			m, err := s.buildMatch(ctx, *v, nil)
			return m, nil, err
		}
	}

	if len(t.Digits) >= minPhoneDigits {
		c, err := s.store.CustomerByPhoneDigits(ctx, t.Digits)
		if err != nil {
			return nil, nil, err
		}
		if c != nil {
			vs, err := s.store.VehiclesByCustomer(ctx, c.ID)
			if err != nil {
				return nil, nil, err
			}
			if len(vs) == 1 {
				m, err := s.buildMatch(ctx, vs[0], c)
				return m, nil, err
			}
			// 一人多车：查询词无法区分想找哪辆，全部降级为种子
			seeds = appendSeeds(seeds, vs, c, ReasonPhone)
		}
	}

	if t.Norm != "" {
		cs, err := s.store.CustomersByName(ctx, t.Norm)
		if err != nil {
			return nil, nil, err
		}
		if len(cs) == 1 {
			vs, err := s.store.VehiclesByCustomer(ctx, cs[0].ID)
			if err != nil {
				return nil, nil, err
			}
			if len(vs) == 1 {
				m, err := s.buildMatch(ctx, vs[0], &cs[0])
				return m, nil, err
			}
			seeds = appendSeeds(seeds, vs, &cs[0], ReasonName)
		} else if len(cs) > 1 {
			// 多客户同名：所有名下车辆都进种子
			for i := range cs {
				vs, err := s.store.VehiclesByCustomer(ctx, cs[i].ID)
				if err != nil {
					return nil, nil, err
				}
				seeds = appendSeeds(seeds, vs, &cs[i], ReasonName)
			}
		}
	}

	return nil, seeds, nil
}

// buildMatch 组装唯一命中：补齐车主（可能已删除 → nil）并急加载维修历史。
func (s *Service) buildMatch(ctx context.Context, v vehicle.Vehicle, c *customer.Customer) (*Result, error) {
	if c == nil {
		var err error
		c, err = s.store.CustomerByID(ctx, v.CustomerID)
		if err != nil {
			return nil, err
		}
	}
	services, err := s.store.ServicesByVehicle(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	return &Result{
		Match: &ResolvedMatch{
			Candidate: Candidate{Vehicle: v, Customer: c},
			Services:  services,
		},
	}, nil
}

func appendSeeds(seeds []Suggestion, vs []vehicle.Vehicle, c *customer.Customer, reason Reason) []Suggestion {
	for _, v := range vs {
		seeds = append(seeds, Suggestion{
			Candidate: Candidate{Vehicle: v, Customer: c},
			Reason:    reason,
			Score:     seedScore,
		})
	}
	return seeds
}
