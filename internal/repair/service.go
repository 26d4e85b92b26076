package repair

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid repair order input")

// Service 封装维修单领域的核心用例（不依赖 HTTP），便于复用和测试。
type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// CreateOrderInput 开单入参。
type CreateOrderInput struct {
	VehicleID   string
	Title       string
	Description string
	Mechanic    string
	Currency    string

	EstimatedCost int64
}

// ListOrdersFilter 查询条件。
type ListOrdersFilter struct {
	VehicleID string
	Status    Status
	Offset    int
	Limit     int
}

func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	if strings.TrimSpace(in.VehicleID) == "" {
		return nil, fmt.Errorf("%w: vehicle_id required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title required", ErrInvalidInput)
	}

	o := &Order{
		ID:            uuid.NewString(),
		VehicleID:     strings.TrimSpace(in.VehicleID),
		Status:        StatusOpen,
		Mechanic:      strings.TrimSpace(in.Mechanic),
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		EstimatedCost: in.EstimatedCost,
		Currency:      defaultCurrency(in.Currency),
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus 根据状态机规则进行状态流转。
func (s *Service) UpdateStatus(ctx context.Context, orderID string, to Status, now time.Time) (*Order, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, fmt.Errorf("%w: order_id required", ErrInvalidInput)
	}
	if to == "" {
		return nil, fmt.Errorf("%w: target status required", ErrInvalidInput)
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := ApplyTransition(o, to, now); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// SetFinalCost 完工后写入实际费用（仅 completed/delivered 状态允许）。
func (s *Service) SetFinalCost(ctx context.Context, orderID string, cost int64) (*Order, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, fmt.Errorf("%w: order_id required", ErrInvalidInput)
	}
	if cost < 0 {
		return nil, fmt.Errorf("%w: cost must be non-negative", ErrInvalidInput)
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusCompleted && o.Status != StatusDelivered {
		return nil, fmt.Errorf("%w: final cost only allowed after completion, status=%s", ErrInvalidTransition, o.Status)
	}
	o.FinalCost = cost
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*Order, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id required", ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, f ListOrdersFilter) ([]Order, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}
	return s.repo.List(ctx, strings.TrimSpace(f.VehicleID), f.Status, f.Offset, f.Limit)
}

func defaultCurrency(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return "USD"
	}
	return strings.ToUpper(c)
}
