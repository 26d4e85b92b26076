package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/GarageLink/GarageLink/internal/common/config"
	"github.com/google/uuid"
)

var ErrTooLarge = errors.New("attachment exceeds size limit")

// Service 附件存储：元数据入库，内容按 <dir>/<order_id>/<attachment_id> 落盘。
type Service struct {
	repo *Repo
	cfg  config.MediaConfig
}

func NewService(repo *Repo, cfg config.MediaConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Save 写入附件内容并登记元数据。
func (s *Service) Save(ctx context.Context, orderID, fileName, contentType string, size int64, body io.Reader) (*Attachment, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, fmt.Errorf("order_id required")
	}
	fileName = filepath.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." {
		return nil, fmt.Errorf("file_name required")
	}
	maxBytes := s.cfg.MaxUploadMB * 1024 * 1024
	if maxBytes > 0 && size > maxBytes {
		return nil, ErrTooLarge
	}

	id := uuid.NewString()
	rel := filepath.Join(orderID, id)
	abs := filepath.Join(s.cfg.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	// 上限兜底：即使上游没给准 size，也不允许写超
	var written int64
	if maxBytes > 0 {
		written, err = io.Copy(f, io.LimitReader(body, maxBytes+1))
		if err == nil && written > maxBytes {
			_ = os.Remove(abs)
			return nil, ErrTooLarge
		}
	} else {
		written, err = io.Copy(f, body)
	}
	if err != nil {
		_ = os.Remove(abs)
		return nil, fmt.Errorf("failed to write media file: %w", err)
	}

	a := &Attachment{
		ID:          id,
		OrderID:     orderID,
		FileName:    fileName,
		ContentType: strings.TrimSpace(contentType),
		SizeBytes:   written,
		StoredPath:  rel,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		_ = os.Remove(abs)
		return nil, err
	}
	return a, nil
}

// Open 打开附件内容用于下载。
func (s *Service) Open(ctx context.Context, id string) (*Attachment, *os.File, error) {
	if s == nil || s.repo == nil {
		return nil, nil, fmt.Errorf("service not initialized")
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(filepath.Join(s.cfg.Dir, a.StoredPath))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open media file: %w", err)
	}
	return a, f, nil
}

func (s *Service) ListByOrder(ctx context.Context, orderID string) ([]Attachment, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	return s.repo.ListByOrder(ctx, strings.TrimSpace(orderID))
}

// Delete 删除元数据和落盘文件；文件缺失不视为错误。
func (s *Service) Delete(ctx context.Context, id string) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.cfg.Dir, a.StoredPath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove media file: %w", err)
	}
	return nil
}
