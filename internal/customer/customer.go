package customer

import (
	"strings"
	"time"
	"unicode"
)

// Customer 是 customers 表的 GORM 模型。
type Customer struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:128;not null;index" json:"name"`
	Phone       string    `gorm:"uniqueIndex;size:32;not null" json:"phone"`
	PhoneDigits string    `gorm:"index;size:32;not null" json:"-"` // 电话的纯数字投影，写入时维护
	Email       string    `gorm:"size:128" json:"email,omitempty"`
	Address     string    `gorm:"size:255" json:"address,omitempty"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PhoneDigitsOf 去掉电话中的所有非数字字符（横线/空格/括号等）。
func PhoneDigitsOf(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
