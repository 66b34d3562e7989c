// Package cache cung cấp cache key-value bền trên đĩa với TTL.
// Mỗi entry là một file JSON dạng {data, expiry} dưới thư mục cache,
// tên file mang prefix cố định để phân biệt với file khác trong thư mục.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"agency_portal/internal/logger"
)

// keyPrefix là prefix cố định cho mọi file cache.
const keyPrefix = "portal_cache_"

// entry là cấu trúc lưu trên đĩa cho một key.
type entry struct {
	Data   json.RawMessage `json:"data"`   // Giá trị đã được JSON encode
	Expiry int64           `json:"expiry"` // Thời điểm hết hạn (UnixMilli)
}

// FileCache là cache bền trên đĩa, an toàn khi dùng đồng thời.
type FileCache struct {
	dir string
	mu  sync.Mutex
}

// NewFileCache tạo cache với thư mục lưu trữ được cung cấp.
// Thư mục được tạo nếu chưa tồn tại.
func NewFileCache(dir string) (*FileCache, error) {
	if dir == "" {
		return nil, fmt.Errorf("thư mục cache không được để trống")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("không thể tạo thư mục cache %s: %w", dir, err)
	}
	return &FileCache{dir: dir}, nil
}

// filePath trả về đường dẫn file cho key. Ký tự không an toàn được thay bằng '_'.
func (c *FileCache) filePath(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(c.dir, keyPrefix+safe+".json")
}

// Get đọc giá trị của key vào out (con trỏ).
// Entry hết hạn bị xóa ngay và báo miss. Trả về true nếu hit.
func (c *FileCache) Get(key string, out interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.filePath(key)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("không thể đọc cache %s: %w", key, err)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// File hỏng: xóa và báo miss
		_ = os.Remove(path)
		return false, nil
	}

	if e.Expiry <= time.Now().UnixMilli() {
		// Hết hạn: xóa ngay và báo miss
		_ = os.Remove(path)
		return false, nil
	}

	if out != nil {
		if err := json.Unmarshal(e.Data, out); err != nil {
			return false, fmt.Errorf("không thể decode giá trị cache %s: %w", key, err)
		}
	}
	return true, nil
}

// Set lưu giá trị với expiry = now + ttl.
// Khi ghi thất bại (ví dụ hết dung lượng): dọn các entry hết hạn rồi
// trả lỗi, KHÔNG thử ghi lại: cache là best-effort.
func (c *FileCache) Set(key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("không thể encode giá trị cache %s: %w", key, err)
	}

	e := entry{
		Data:   data,
		Expiry: time.Now().Add(ttl).UnixMilli(),
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("không thể encode entry cache %s: %w", key, err)
	}

	if err := os.WriteFile(c.filePath(key), raw, 0o644); err != nil {
		logger.GetAppLogger().WithError(err).Warnf("Ghi cache %s thất bại, dọn các entry hết hạn", key)
		c.sweepExpiredLocked()
		return fmt.Errorf("không thể ghi cache %s: %w", key, err)
	}
	return nil
}

// Delete xóa entry của key (không lỗi nếu không tồn tại).
func (c *FileCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = os.Remove(c.filePath(key))
}

// Clear xóa toàn bộ entry mang prefix cache trong thư mục.
func (c *FileCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}
	for _, f := range entries {
		if !f.IsDir() && strings.HasPrefix(f.Name(), keyPrefix) {
			_ = os.Remove(filepath.Join(c.dir, f.Name()))
		}
	}
}

// sweepExpiredLocked xóa các entry đã hết hạn. Caller phải giữ lock.
func (c *FileCache) sweepExpiredLocked() {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}
	now := time.Now().UnixMilli()
	for _, f := range entries {
		if f.IsDir() || !strings.HasPrefix(f.Name(), keyPrefix) {
			continue
		}
		path := filepath.Join(c.dir, f.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var e entry
		if err := json.Unmarshal(raw, &e); err != nil || e.Expiry <= now {
			_ = os.Remove(path)
		}
	}
}

// CachedFetch trả về giá trị cache nếu còn hạn, ngược lại gọi producer,
// lưu kết quả với ttl rồi trả về. Các goroutine gọi đồng thời cho cùng key
// có thể cùng chạy producer (không gộp request).
func CachedFetch[T any](c *FileCache, key string, ttl time.Duration, producer func() (T, error)) (T, error) {
	var cached T
	hit, err := c.Get(key, &cached)
	if err == nil && hit {
		return cached, nil
	}

	value, err := producer()
	if err != nil {
		var zero T
		return zero, err
	}

	// Lỗi ghi cache không làm hỏng kết quả
	if err := c.Set(key, value, ttl); err != nil {
		logger.GetAppLogger().WithError(err).Debugf("Không lưu được cache cho key %s", key)
	}
	return value, nil
}
