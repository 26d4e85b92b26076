package media

import "time"

// Attachment 是 attachments 表的 GORM 模型。
// 文件内容落盘到 MediaConfig.Dir，表里只存元数据和相对路径。
type Attachment struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	OrderID     string    `gorm:"index;size:36;not null" json:"order_id"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	ContentType string    `gorm:"size:128" json:"content_type"`
	SizeBytes   int64     `gorm:"not null;default:0" json:"size_bytes"`
	StoredPath  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
