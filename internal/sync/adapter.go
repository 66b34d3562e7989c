// Package sync giữ các slice trong state store đồng bộ với MongoDB.
//
// Mỗi subscription gắn một truy vấn với một slice: khi collection liên quan
// thay đổi (event từ tầng CRUD), truy vấn được chạy lại và KẾT QUẢ MỚI THAY
// TOÀN BỘ snapshot cũ, không merge từng phần. Subscription trùng key bị bỏ
// qua để không chạy cùng một truy vấn hai lần.
package sync

import (
	"context"
	stdsync "sync"
	"time"

	"agency_portal/internal/api/events"
	"agency_portal/internal/common"
	"agency_portal/internal/logger"
	"agency_portal/internal/state"
)

// QueryFunc chạy một truy vấn và trả về snapshot mới cho slice.
type QueryFunc func(ctx context.Context) (interface{}, error)

// Subscription mô tả một truy vấn sống.
type Subscription struct {
	// Key nhận diện subscription; trùng key thì Subscribe bỏ qua.
	Key string
	// SliceName là slice trong state store nhận snapshot.
	SliceName string
	// Collections là các collection mà thay đổi sẽ kích hoạt re-query.
	Collections []string
	// Query là truy vấn chính (thường có sort phía server).
	Query QueryFunc
	// Fallback (tùy chọn) chạy khi Query lỗi truy vấn, thường là cùng
	// filter nhưng bỏ sort để sắp xếp phía client.
	Fallback QueryFunc
}

type liveSub struct {
	Subscription

	// mu tuần tự hóa refresh trên cùng một subscription: event phát mỗi
	// handler một goroutine nên hai lần ghi sát nhau có thể re-query đồng
	// thời, snapshot cũ không được đè snapshot mới.
	mu       stdsync.Mutex
	degraded bool // Đã chuyển sang fallback do lỗi truy vấn
}

// Adapter quản lý các subscription và ghi snapshot vào state store.
type Adapter struct {
	store        *state.Store
	queryTimeout time.Duration

	mu   stdsync.Mutex
	subs map[string]*liveSub
}

// NewAdapter tạo adapter và đăng ký nhận event thay đổi dữ liệu.
func NewAdapter(store *state.Store) *Adapter {
	a := &Adapter{
		store:        store,
		queryTimeout: 15 * time.Second,
		subs:         map[string]*liveSub{},
	}
	events.OnDataChanged(a.handleDataChange)
	return a
}

// Subscribe đăng ký subscription và chạy truy vấn lần đầu ngay.
// Key đã tồn tại thì không đăng ký lại và không chạy lại truy vấn.
func (a *Adapter) Subscribe(ctx context.Context, sub Subscription) error {
	a.mu.Lock()
	if _, exists := a.subs[sub.Key]; exists {
		a.mu.Unlock()
		logger.GetAppLogger().Debugf("Subscription %s đã tồn tại, bỏ qua", sub.Key)
		return nil
	}
	live := &liveSub{Subscription: sub}
	a.subs[sub.Key] = live
	a.mu.Unlock()

	return a.refresh(ctx, live)
}

// Unsubscribe gỡ một subscription theo key. Slice giữ snapshot cuối cùng.
func (a *Adapter) Unsubscribe(key string) {
	a.mu.Lock()
	delete(a.subs, key)
	a.mu.Unlock()
}

// Refresh chạy lại truy vấn của một subscription theo key.
func (a *Adapter) Refresh(ctx context.Context, key string) error {
	a.mu.Lock()
	live, exists := a.subs[key]
	a.mu.Unlock()
	if !exists {
		return common.ErrNotFound
	}
	return a.refresh(ctx, live)
}

// Teardown gỡ toàn bộ subscription. Gọi trước khi thu hồi phiên đăng nhập
// để không còn truy vấn nào chạy bằng phiên cũ. Idempotent.
func (a *Adapter) Teardown() {
	a.mu.Lock()
	count := len(a.subs)
	a.subs = map[string]*liveSub{}
	a.mu.Unlock()

	if count > 0 {
		logger.GetAppLogger().Infof("Đã gỡ %d subscription", count)
	}
}

// Count trả về số subscription đang sống.
func (a *Adapter) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.subs)
}

// handleDataChange chạy lại các truy vấn theo dõi collection vừa thay đổi.
func (a *Adapter) handleDataChange(ctx context.Context, e events.DataChangeEvent) {
	a.mu.Lock()
	affected := make([]*liveSub, 0, len(a.subs))
	for _, live := range a.subs {
		for _, col := range live.Collections {
			if col == e.CollectionName {
				affected = append(affected, live)
				break
			}
		}
	}
	a.mu.Unlock()

	for _, live := range affected {
		if err := a.refresh(context.Background(), live); err != nil {
			logger.GetErrorLogger().Warnf("Re-query subscription %s thất bại: %v", live.Key, err)
		}
	}
}

// refresh chạy truy vấn và thay snapshot của slice. Lỗi truy vấn (sort quá
// bộ nhớ, thiếu index, ...) chuyển sang fallback nếu có; các lỗi khác giữ
// nguyên snapshot cũ trong slice.
func (a *Adapter) refresh(parent context.Context, live *liveSub) error {
	live.mu.Lock()
	defer live.mu.Unlock()

	ctx, cancel := context.WithTimeout(parent, a.queryTimeout)
	defer cancel()

	query := live.Query
	if live.degraded && live.Fallback != nil {
		query = live.Fallback
	}

	snapshot, err := query(ctx)
	if err != nil && !live.degraded && live.Fallback != nil && common.IsQueryError(err) {
		logger.GetErrorLogger().Warnf("Truy vấn %s lỗi (%v), chuyển sang fallback không sort", live.Key, err)
		live.degraded = true
		snapshot, err = live.Fallback(ctx)
	}
	if err != nil {
		return err
	}

	a.store.Set(live.SliceName, snapshot)
	return nil
}
