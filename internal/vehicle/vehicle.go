package vehicle

import (
	"time"
)

// Vehicle 是 vehicles 表的 GORM 模型。
// 车牌号全局唯一（大小写不敏感匹配），是最高精度的查找键。
type Vehicle struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	CustomerID  string    `gorm:"index;size:36" json:"customer_id"`
	PlateNumber string    `gorm:"uniqueIndex;size:32;not null" json:"plate_number"`
	Make        string    `gorm:"size:64" json:"make"`
	Model       string    `gorm:"size:64" json:"model"`
	Year        int       `json:"year,omitempty"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
