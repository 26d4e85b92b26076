package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidInput  = errors.New("invalid customer input")
	ErrPhoneConflict = errors.New("phone already registered")
)

// Service 封装客户档案的核心用例（不依赖 HTTP），便于复用和测试。
type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// CreateInput 新建客户的入参。
type CreateInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Customer, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || phone == "" {
		return nil, fmt.Errorf("%w: name and phone required", ErrInvalidInput)
	}
	digits := PhoneDigitsOf(phone)
	if digits == "" {
		return nil, fmt.Errorf("%w: phone has no digits", ErrInvalidInput)
	}

	// 电话全局唯一
	if _, err := s.repo.FindByPhoneDigits(ctx, digits); err == nil {
		return nil, ErrPhoneConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &Customer{
		ID:          uuid.NewString(),
		Name:        name,
		Phone:       phone,
		PhoneDigits: digits,
		Email:       strings.TrimSpace(in.Email),
		Address:     strings.TrimSpace(in.Address),
		Notes:       strings.TrimSpace(in.Notes),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateInput 更新客户的入参；空字段保持原值，Phone 变更时同步维护数字投影。
type UpdateInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Customer, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id required", ErrInvalidInput)
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(in.Name); v != "" {
		c.Name = v
	}
	if v := strings.TrimSpace(in.Phone); v != "" && v != c.Phone {
		digits := PhoneDigitsOf(v)
		if digits == "" {
			return nil, fmt.Errorf("%w: phone has no digits", ErrInvalidInput)
		}
		if other, err := s.repo.FindByPhoneDigits(ctx, digits); err == nil && other.ID != c.ID {
			return nil, ErrPhoneConflict
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		c.Phone = v
		c.PhoneDigits = digits
	}
	if v := strings.TrimSpace(in.Email); v != "" {
		c.Email = v
	}
	if v := strings.TrimSpace(in.Address); v != "" {
		c.Address = v
	}
	if v := strings.TrimSpace(in.Notes); v != "" {
		c.Notes = v
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Customer, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id required", ErrInvalidInput)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id required", ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]Customer, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}
	return s.repo.List(ctx, offset, limit)
}
