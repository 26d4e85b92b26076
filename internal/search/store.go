package search

import (
	"context"
	"errors"
	"strings"

	"github.com/GarageLink/GarageLink/internal/common/middleware"
	"github.com/GarageLink/GarageLink/internal/customer"
	"github.com/GarageLink/GarageLink/internal/repair"
	"github.com/GarageLink/GarageLink/internal/vehicle"
	"gorm.io/gorm"
)

// Candidate 一次查找过程中的临时候选：车辆 + 可选车主。
// 车主可能已被删除（外键悬空），此时 Customer 为 nil，不是错误。
type Candidate struct {
	Vehicle  vehicle.Vehicle    `json:"vehicle"`
	Customer *customer.Customer `json:"customer"`
}

// Store 查找核心依赖的记录存取接口（全部只读）。
// 约定：单条查找未命中返回 (nil, nil)，不把 not-found 当错误。
type Store interface {
	// VehicleByPlate 按车牌精确查找（大小写不敏感）。
	VehicleByPlate(ctx context.Context, plate string) (*vehicle.Vehicle, error)
	// CustomerByID 按主键查找车主（可能不存在）。
	CustomerByID(ctx context.Context, id string) (*customer.Customer, error)
	// CustomerByPhoneDigits 按去符号后的电话精确查找。
	CustomerByPhoneDigits(ctx context.Context, digits string) (*customer.Customer, error)
	// CustomersByName 按姓名精确查找（大小写不敏感，可能多条）。
	CustomersByName(ctx context.Context, name string) ([]customer.Customer, error)
	// VehiclesByCustomer 列出某客户名下全部车辆。
	VehiclesByCustomer(ctx context.Context, customerID string) ([]vehicle.Vehicle, error)
	// FuzzyCandidates 按文本/数字模式做子串匹配，左连接车主，按建档时间倒序，截断到 limit。
	FuzzyCandidates(ctx context.Context, p Patterns, limit int) ([]Candidate, error)
	// ServicesByVehicle 列出某辆车的全部维修记录。
	ServicesByVehicle(ctx context.Context, vehicleID string) ([]repair.Order, error)
}

// GormStore 基于 gorm 的 Store 实现。
// breaker 可选，只包住模糊抓取这一条最重的扫描；熔断打开时错误原样上抛。
type GormStore struct {
	db      *gorm.DB
	breaker *middleware.CircuitBreaker
}

func NewGormStore(db *gorm.DB, breaker *middleware.CircuitBreaker) *GormStore {
	return &GormStore{db: db, breaker: breaker}
}

func (s *GormStore) VehicleByPlate(ctx context.Context, plate string) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := s.db.WithContext(ctx).
		Where("UPPER(plate_number) = UPPER(?)", plate).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *GormStore) CustomerByID(ctx context.Context, id string) (*customer.Customer, error) {
	if id == "" {
		return nil, nil
	}
	var c customer.Customer
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *GormStore) CustomerByPhoneDigits(ctx context.Context, digits string) (*customer.Customer, error) {
	var c customer.Customer
	err := s.db.WithContext(ctx).Where("phone_digits = ?", digits).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *GormStore) CustomersByName(ctx context.Context, name string) ([]customer.Customer, error) {
	var out []customer.Customer
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Order("created_at desc").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) VehiclesByCustomer(ctx context.Context, customerID string) ([]vehicle.Vehicle, error) {
	var out []vehicle.Vehicle
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at desc").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) FuzzyCandidates(ctx context.Context, p Patterns, limit int) ([]Candidate, error) {
	if p.Empty() || limit <= 0 {
		return nil, nil
	}

	var conds []string
	var args []interface{}
	for _, t := range p.Text {
		like := "%" + EscapeLike(strings.ToUpper(t)) + "%"
		conds = append(conds,
			"UPPER(vehicles.plate_number) LIKE ?",
			"UPPER(vehicles.make) LIKE ?",
			"UPPER(vehicles.model) LIKE ?",
			"UPPER(customers.name) LIKE ?",
		)
		args = append(args, like, like, like, like)
	}
	for _, d := range p.Digit {
		conds = append(conds, "customers.phone_digits LIKE ?")
		args = append(args, "%"+EscapeLike(d)+"%")
	}

	var vehicles []vehicle.Vehicle
	query := func() error {
		return s.db.WithContext(ctx).
			Model(&vehicle.Vehicle{}).
			Select("vehicles.*").
			Joins("LEFT JOIN customers ON customers.id = vehicles.customer_id").
			Where(strings.Join(conds, " OR "), args...).
			Order("vehicles.created_at DESC").
			Limit(limit).
			Find(&vehicles).Error
	}

	var err error
	if s.breaker != nil {
		err = s.breaker.Call(ctx, query)
	} else {
		err = query()
	}
	if err != nil {
		return nil, err
	}

	return s.attachOwners(ctx, vehicles)
}

// attachOwners 批量补齐候选车辆的车主信息；查不到的车主置 nil。
func (s *GormStore) attachOwners(ctx context.Context, vehicles []vehicle.Vehicle) ([]Candidate, error) {
	ids := make([]string, 0, len(vehicles))
	seen := make(map[string]struct{}, len(vehicles))
	for _, v := range vehicles {
		if v.CustomerID == "" {
			continue
		}
		if _, ok := seen[v.CustomerID]; ok {
			continue
		}
		seen[v.CustomerID] = struct{}{}
		ids = append(ids, v.CustomerID)
	}

	owners := make(map[string]customer.Customer, len(ids))
	if len(ids) > 0 {
		var cs []customer.Customer
		if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&cs).Error; err != nil {
			return nil, err
		}
		for _, c := range cs {
			owners[c.ID] = c
		}
	}

	out := make([]Candidate, 0, len(vehicles))
	for _, v := range vehicles {
		cand := Candidate{Vehicle: v}
		if c, ok := owners[v.CustomerID]; ok {
			cc := c
			cand.Customer = &cc
		}
		out = append(out, cand)
	}
	return out, nil
}

func (s *GormStore) ServicesByVehicle(ctx context.Context, vehicleID string) ([]repair.Order, error) {
	var out []repair.Order
	err := s.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("created_at desc").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
