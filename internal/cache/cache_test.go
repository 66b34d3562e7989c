package cache

import (
	"errors"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *FileCache {
	t.Helper()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("Không tạo được cache: %v", err)
	}
	return c
}

func TestCacheSetGet(t *testing.T) {
	c := newTestCache(t)

	type profile struct {
		Name string `json:"name"`
		Tier string `json:"tier"`
	}

	if err := c.Set("profile", profile{Name: "An", Tier: "premium"}, time.Minute); err != nil {
		t.Fatalf("Set thất bại: %v", err)
	}

	var got profile
	hit, err := c.Get("profile", &got)
	if err != nil {
		t.Fatalf("Get thất bại: %v", err)
	}
	if !hit {
		t.Fatal("Phải hit sau khi Set với TTL còn hạn")
	}
	if got.Name != "An" || got.Tier != "premium" {
		t.Errorf("Giá trị đọc lại không khớp: %+v", got)
	}
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	c := newTestCache(t)

	var out string
	hit, err := c.Get("khong-ton-tai", &out)
	if err != nil {
		t.Fatalf("Get key lạ không được lỗi: %v", err)
	}
	if hit {
		t.Error("Key chưa set phải là miss")
	}
}

func TestCacheExpiredEntryEvicted(t *testing.T) {
	c := newTestCache(t)

	if err := c.Set("ttl", "value", -time.Second); err != nil {
		t.Fatalf("Set thất bại: %v", err)
	}

	var out string
	hit, err := c.Get("ttl", &out)
	if err != nil {
		t.Fatalf("Get thất bại: %v", err)
	}
	if hit {
		t.Error("Entry hết hạn phải là miss và bị xóa")
	}

	// Lần Get thứ hai vẫn là miss (file đã bị xóa)
	hit, _ = c.Get("ttl", &out)
	if hit {
		t.Error("Entry hết hạn phải bị xóa khỏi đĩa")
	}
}

func TestCacheDelete(t *testing.T) {
	c := newTestCache(t)

	_ = c.Set("key", 42, time.Minute)
	c.Delete("key")

	var out int
	hit, _ := c.Get("key", &out)
	if hit {
		t.Error("Key đã Delete phải là miss")
	}

	// Delete key không tồn tại là an toàn
	c.Delete("key")
}

func TestCachedFetch(t *testing.T) {
	c := newTestCache(t)

	calls := 0
	producer := func() (string, error) {
		calls++
		return "fresh", nil
	}

	got, err := CachedFetch(c, "fetch", time.Minute, producer)
	if err != nil {
		t.Fatalf("CachedFetch thất bại: %v", err)
	}
	if got != "fresh" || calls != 1 {
		t.Errorf("Lần đầu phải gọi producer: got=%s calls=%d", got, calls)
	}

	got, err = CachedFetch(c, "fetch", time.Minute, producer)
	if err != nil {
		t.Fatalf("CachedFetch lần hai thất bại: %v", err)
	}
	if got != "fresh" || calls != 1 {
		t.Errorf("Lần hai phải dùng cache, không gọi lại producer: calls=%d", calls)
	}
}

func TestCachedFetchProducerError(t *testing.T) {
	c := newTestCache(t)

	wantErr := errors.New("nguồn dữ liệu lỗi")
	_, err := CachedFetch(c, "err", time.Minute, func() (int, error) {
		return 0, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("Lỗi producer phải được trả nguyên vẹn, nhận %v", err)
	}

	// Lỗi không được lưu vào cache
	var out int
	hit, _ := c.Get("err", &out)
	if hit {
		t.Error("Kết quả lỗi không được cache")
	}
}
