package search

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/GarageLink/GarageLink/internal/customer"
	"github.com/GarageLink/GarageLink/internal/repair"
	"github.com/GarageLink/GarageLink/internal/vehicle"
)

// fakeStore 纯内存 Store 实现，行为与 GormStore 的查询语义对齐。
type fakeStore struct {
	customers []customer.Customer
	vehicles  []vehicle.Vehicle
	services  map[string][]repair.Order
}

func (f *fakeStore) VehicleByPlate(_ context.Context, plate string) (*vehicle.Vehicle, error) {
	for i := range f.vehicles {
		if strings.EqualFold(f.vehicles[i].PlateNumber, plate) {
			v := f.vehicles[i]
			return &v, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CustomerByID(_ context.Context, id string) (*customer.Customer, error) {
	for i := range f.customers {
		if f.customers[i].ID == id {
			c := f.customers[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CustomerByPhoneDigits(_ context.Context, digits string) (*customer.Customer, error) {
	for i := range f.customers {
		if customer.PhoneDigitsOf(f.customers[i].Phone) == digits {
			c := f.customers[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CustomersByName(_ context.Context, name string) ([]customer.Customer, error) {
	var out []customer.Customer
	for i := range f.customers {
		if strings.EqualFold(f.customers[i].Name, name) {
			out = append(out, f.customers[i])
		}
	}
	return out, nil
}

func (f *fakeStore) VehiclesByCustomer(_ context.Context, customerID string) ([]vehicle.Vehicle, error) {
	var out []vehicle.Vehicle
	for i := range f.vehicles {
		if f.vehicles[i].CustomerID == customerID {
			out = append(out, f.vehicles[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) FuzzyCandidates(_ context.Context, p Patterns, limit int) ([]Candidate, error) {
	if p.Empty() || limit <= 0 {
		return nil, nil
	}
	var out []Candidate
	for i := range f.vehicles {
		v := f.vehicles[i]
		var owner *customer.Customer
		for j := range f.customers {
			if f.customers[j].ID == v.CustomerID {
				c := f.customers[j]
				owner = &c
				break
			}
		}
		if f.rowMatches(p, v, owner) {
			out = append(out, Candidate{Vehicle: v, Customer: owner})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Vehicle.CreatedAt.After(out[j].Vehicle.CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) rowMatches(p Patterns, v vehicle.Vehicle, owner *customer.Customer) bool {
	for _, t := range p.Text {
		up := strings.ToUpper(t)
		if strings.Contains(strings.ToUpper(v.PlateNumber), up) ||
			strings.Contains(strings.ToUpper(v.Make), up) ||
			strings.Contains(strings.ToUpper(v.Model), up) {
			return true
		}
		if owner != nil && strings.Contains(strings.ToUpper(owner.Name), up) {
			return true
		}
	}
	if owner != nil {
		pd := customer.PhoneDigitsOf(owner.Phone)
		for _, d := range p.Digit {
			if strings.Contains(pd, d) {
				return true
			}
		}
	}
	return false
}

func (f *fakeStore) ServicesByVehicle(_ context.Context, vehicleID string) ([]repair.Order, error) {
	return f.services[vehicleID], nil
}

func at(day int) time.Time {
	return time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC)
}

func newFixtureStore() *fakeStore {
	return &fakeStore{
		customers: []customer.Customer{
			{ID: "c1", Name: "John Smith", Phone: "555-1234567", CreatedAt: at(1)},
			{ID: "c2", Name: "Smith", Phone: "555-2000001", CreatedAt: at(2)},
			{ID: "c3", Name: "Smith", Phone: "555-3000001", CreatedAt: at(3)},
			{ID: "c4", Name: "Maria Lopez", Phone: "(777) 888-9999", CreatedAt: at(4)},
		},
		vehicles: []vehicle.Vehicle{
			{ID: "v1", CustomerID: "c1", PlateNumber: "XYZ789", Make: "Toyota", Model: "Corolla", CreatedAt: at(10)},
			{ID: "v2", CustomerID: "c1", PlateNumber: "ABC1234", Make: "Honda", Model: "Civic", CreatedAt: at(11)},
			{ID: "v3", CustomerID: "c2", PlateNumber: "DEF5678", Make: "Ford", Model: "Focus", CreatedAt: at(12)},
			{ID: "v4", CustomerID: "c3", PlateNumber: "GHI9012", Make: "Mazda", Model: "3", CreatedAt: at(13)},
			{ID: "v5", CustomerID: "c3", PlateNumber: "JKL3456", Make: "Mazda", Model: "6", CreatedAt: at(14)},
			{ID: "v6", CustomerID: "c4", PlateNumber: "MNO7890", Make: "Toyota", Model: "Camry", CreatedAt: at(15)},
		},
		services: map[string][]repair.Order{
			"v1": {{ID: "o1", VehicleID: "v1", Title: "Oil change", Status: repair.StatusDelivered}},
		},
	}
}

func newTestService() *Service {
	return NewService(newFixtureStore(), 5)
}

func TestSearchRejectsEmptyTerm(t *testing.T) {
	s := newTestService()
	for _, raw := range []string{"", "   ", "\t"} {
		if _, err := s.Search(context.Background(), raw, 5); err != ErrEmptyTerm {
			t.Fatalf("Search(%q) err = %v, want ErrEmptyTerm", raw, err)
		}
	}
}

func TestSearchPlatePriority(t *testing.T) {
	s := newTestService()
	res, err := s.Search(context.Background(), "xyz789", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Match == nil {
		t.Fatalf("expected plate match")
	}
	if res.Match.Vehicle.PlateNumber != "XYZ789" {
		t.Fatalf("matched wrong vehicle: %s", res.Match.Vehicle.PlateNumber)
	}
	if res.Match.Customer == nil || res.Match.Customer.ID != "c1" {
		t.Fatalf("expected owner c1 attached")
	}
	if len(res.Match.Services) != 1 || res.Match.Services[0].Title != "Oil change" {
		t.Fatalf("expected service history eagerly joined, got %#v", res.Match.Services)
	}
	// 命中车辆绝不能同时出现在建议里
	for _, sg := range res.Suggestions {
		if sg.Vehicle.ID == res.Match.Vehicle.ID {
			t.Fatalf("matched vehicle leaked into suggestions")
		}
	}
}

func TestSearchPhoneCardinalityGuard(t *testing.T) {
	s := newTestService()
	// c1 名下两辆车：电话精确命中也不能自动二选一
	res, err := s.Search(context.Background(), "555-1234567", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Match != nil {
		t.Fatalf("expected no match for multi-vehicle owner, got %s", res.Match.Vehicle.ID)
	}
	if len(res.Suggestions) != 2 {
		t.Fatalf("expected exactly 2 suggestions, got %d", len(res.Suggestions))
	}
	got := map[string]bool{}
	for _, sg := range res.Suggestions {
		if sg.Reason != ReasonPhone {
			t.Fatalf("expected phone reason, got %s", sg.Reason)
		}
		got[sg.Vehicle.ID] = true
	}
	if !got["v1"] || !got["v2"] {
		t.Fatalf("expected both owned vehicles suggested, got %v", got)
	}
}

func TestSearchPhoneUniqueOwnerResolves(t *testing.T) {
	s := newTestService()
	res, err := s.Search(context.Background(), "(777) 888-9999", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Match == nil || res.Match.Vehicle.ID != "v6" {
		t.Fatalf("expected v6 resolved via phone, got %+v", res.Match)
	}
}

func TestSearchDigitFormatInvariance(t *testing.T) {
	s := newTestService()
	a, err := s.Search(context.Background(), "7778889999", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	b, err := s.Search(context.Background(), "(777) 888-9999", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("punctuation changed the result:\n%+v\nvs\n%+v", a, b)
	}
}

func TestSearchNameCardinality(t *testing.T) {
	s := newTestService()
	// 两个叫 Smith 的客户，分别有 1 辆和 2 辆车 → 3 条 name 建议，无命中
	res, err := s.Search(context.Background(), "Smith", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Match != nil {
		t.Fatalf("ambiguous name must not resolve, got %s", res.Match.Vehicle.ID)
	}
	// 同名客户名下的车全部作为种子浮出（哨兵分 1.0）；
	// "John Smith" 的两辆车只能经模糊通道以更低分出现。
	seeds := map[string]bool{}
	for _, sg := range res.Suggestions {
		if sg.Score == seedScore {
			if sg.Reason != ReasonName {
				t.Fatalf("seed with wrong reason %s for %s", sg.Reason, sg.Vehicle.ID)
			}
			seeds[sg.Vehicle.ID] = true
		}
	}
	if len(seeds) != 3 || !seeds["v3"] || !seeds["v4"] || !seeds["v5"] {
		t.Fatalf("expected seeds v3/v4/v5, got %v", seeds)
	}
}

func TestSearchUniqueNameSingleVehicleResolves(t *testing.T) {
	s := newTestService()
	res, err := s.Search(context.Background(), "maria lopez", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Match == nil || res.Match.Vehicle.ID != "v6" {
		t.Fatalf("expected v6 resolved via unique name, got %+v", res.Match)
	}
}

func TestSearchLimitRespected(t *testing.T) {
	s := newTestService()
	for _, term := range []string{"Smith", "Mazda", "Toyota", "555-1234567", "a1b2"} {
		for _, limit := range []int{1, 2, 5} {
			res, err := s.Search(context.Background(), term, limit)
			if err != nil {
				t.Fatalf("Search(%q): %v", term, err)
			}
			if len(res.Suggestions) > limit {
				t.Fatalf("Search(%q, limit=%d) returned %d suggestions", term, limit, len(res.Suggestions))
			}
		}
	}
}

func TestSearchSeedsRankFirst(t *testing.T) {
	s := newTestService()
	res, err := s.Search(context.Background(), "Smith", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Suggestions) < 3 {
		t.Fatalf("expected at least the 3 seeds, got %d", len(res.Suggestions))
	}
	for i := 0; i < 3; i++ {
		if res.Suggestions[i].Reason != ReasonName || res.Suggestions[i].Score != 1.0 {
			t.Fatalf("seed %d not ranked first: %+v", i, res.Suggestions[i])
		}
	}
}

func TestSearchDeterministic(t *testing.T) {
	s := newTestService()
	a, err := s.Search(context.Background(), "Toyota", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for i := 0; i < 5; i++ {
		b, err := s.Search(context.Background(), "Toyota", 5)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("search not deterministic")
		}
	}
}

func TestSearchNoResultsIsNotError(t *testing.T) {
	s := newTestService()
	res, err := s.Search(context.Background(), "zzzzzzz no such thing", 5)
	if err != nil {
		t.Fatalf("no-result search must not error: %v", err)
	}
	if res.Match != nil {
		t.Fatalf("unexpected match")
	}
}

func TestSearchLiteralWildcardEscaped(t *testing.T) {
	store := newFixtureStore()
	store.vehicles = append(store.vehicles, vehicle.Vehicle{
		ID: "v7", PlateNumber: "AB%12", CreatedAt: at(16),
	})
	s := NewService(store, 5)

	// fakeStore 按字面匹配；这里验证生成的模式里通配符已被转义，
	// 不会因为 "%" 的存在把无关车牌全部捞出来。
	p := BuildPatterns(NormalizeTerm("AB%12"))
	for _, pat := range p.Text {
		esc := EscapeLike(pat)
		if strings.Contains(strings.ReplaceAll(esc, `\%`, ""), "%") {
			t.Fatalf("wildcard not escaped in %q -> %q", pat, esc)
		}
	}

	res, err := s.Search(context.Background(), "AB%12", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	found := false
	for _, sg := range res.Suggestions {
		if sg.Vehicle.ID == "v7" {
			found = true
		}
	}
	if res.Match != nil && res.Match.Vehicle.ID == "v7" {
		found = true
	}
	if !found {
		t.Fatalf("literal %% plate not found")
	}
}

func TestSearchVehicleReason(t *testing.T) {
	s := newTestService()
	res, err := s.Search(context.Background(), "Mazda", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Match != nil {
		t.Fatalf("make search must not auto-resolve")
	}
	if len(res.Suggestions) == 0 {
		t.Fatalf("expected suggestions for make search")
	}
	for _, sg := range res.Suggestions {
		if sg.Reason != ReasonVehicle {
			t.Fatalf("expected vehicle reason, got %s for %s", sg.Reason, sg.Vehicle.ID)
		}
	}
}
