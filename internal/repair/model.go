package repair

import "time"

// Status 维修单状态枚举（持久化为字符串）。
type Status string

const (
	StatusOpen       Status = "open"        // 已开单，待开工
	StatusInProgress Status = "in_progress" // 维修中
	StatusCompleted  Status = "completed"   // 维修完成，待交车
	StatusDelivered  Status = "delivered"   // 已交车（终态）
	StatusCanceled   Status = "canceled"    // 已取消（终态）
)

// Order 维修单 GORM 模型。
// 一辆车可以有多条维修单；金额统一按“分”存储，避免浮点误差。
type Order struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// 业务关联
	VehicleID string `gorm:"index;size:36;not null" json:"vehicle_id"`
	Status    Status `gorm:"type:varchar(16);index;not null" json:"status"`
	Mechanic  string `gorm:"size:64" json:"mechanic,omitempty"` // 负责技师

	// 工单内容
	Title       string `gorm:"size:128;not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// 金额信息（单位：分）
	EstimatedCost int64  `gorm:"not null;default:0" json:"estimated_cost"`
	FinalCost     int64  `gorm:"not null;default:0" json:"final_cost"` // 完成后写入
	Currency      string `gorm:"size:8;not null;default:'USD'" json:"currency"`

	// 时间信息
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`   // 开工时间
	CompletedAt *time.Time `json:"completed_at,omitempty"` // 完工时间
	DeliveredAt *time.Time `json:"delivered_at,omitempty"` // 交车时间
	CanceledAt  *time.Time `json:"canceled_at,omitempty"`  // 取消时间
}
