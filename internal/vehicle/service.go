package vehicle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidInput  = errors.New("invalid vehicle input")
	ErrPlateConflict = errors.New("plate number already registered")
)

// Service 封装车辆档案的核心用例。
type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	CustomerID  string
	PlateNumber string
	Make        string
	Model       string
	Year        int
	Notes       string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Vehicle, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	plate := strings.TrimSpace(in.PlateNumber)
	if plate == "" {
		return nil, fmt.Errorf("%w: plate_number required", ErrInvalidInput)
	}

	// 车牌全局唯一（大小写不敏感）
	if _, err := s.repo.FindByPlate(ctx, plate); err == nil {
		return nil, ErrPlateConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	v := &Vehicle{
		ID:          uuid.NewString(),
		CustomerID:  strings.TrimSpace(in.CustomerID),
		PlateNumber: plate,
		Make:        strings.TrimSpace(in.Make),
		Model:       strings.TrimSpace(in.Model),
		Year:        in.Year,
		Notes:       strings.TrimSpace(in.Notes),
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

type UpdateInput struct {
	CustomerID  string
	PlateNumber string
	Make        string
	Model       string
	Year        int
	Notes       string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Vehicle, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id required", ErrInvalidInput)
	}

	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p := strings.TrimSpace(in.PlateNumber); p != "" && !strings.EqualFold(p, v.PlateNumber) {
		if other, err := s.repo.FindByPlate(ctx, p); err == nil && other.ID != v.ID {
			return nil, ErrPlateConflict
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		v.PlateNumber = p
	}
	if c := strings.TrimSpace(in.CustomerID); c != "" {
		v.CustomerID = c
	}
	if m := strings.TrimSpace(in.Make); m != "" {
		v.Make = m
	}
	if m := strings.TrimSpace(in.Model); m != "" {
		v.Model = m
	}
	if in.Year != 0 {
		v.Year = in.Year
	}
	if n := strings.TrimSpace(in.Notes); n != "" {
		v.Notes = n
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Vehicle, error) {
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

func (s *Service) List(ctx context.Context, customerID string, offset, limit int) ([]Vehicle, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}
	return s.repo.List(ctx, strings.TrimSpace(customerID), offset, limit)
}
