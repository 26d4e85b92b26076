package repair

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTransition 不允许的状态流转（含终态再流转）。
var ErrInvalidTransition = errors.New("invalid repair order status transition")

// AllowTransition 定义维修单状态机的允许流转关系。
var AllowTransition = map[Status][]Status{
	StatusOpen:       {StatusInProgress, StatusCanceled},
	StatusInProgress: {StatusCompleted, StatusCanceled},
	StatusCompleted:  {StatusDelivered, StatusCanceled},
	// 终态：不允许从 delivered / canceled 再流转
	StatusDelivered: {},
	StatusCanceled:  {},
}

// CanTransition 判断 from -> to 是否是一个允许的状态流转。
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	allowed, ok := AllowTransition[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition 对维修单应用状态变更，并维护关键时间字段。
// 仅在 CanTransition 返回 true 时调用。
func ApplyTransition(o *Order, to Status, now time.Time) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}
	from := o.Status
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	o.Status = to

	switch to {
	case StatusInProgress:
		if o.StartedAt == nil {
			t := now
			o.StartedAt = &t
		}
	case StatusCompleted:
		if o.CompletedAt == nil {
			t := now
			o.CompletedAt = &t
		}
	case StatusDelivered:
		if o.DeliveredAt == nil {
			t := now
			o.DeliveredAt = &t
		}
	case StatusCanceled:
		if o.CanceledAt == nil {
			t := now
			o.CanceledAt = &t
		}
	}
	return nil
}
