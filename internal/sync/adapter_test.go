package sync

import (
	"context"
	"errors"
	stdsync "sync"
	"sync/atomic"
	"testing"
	"time"

	"agency_portal/internal/api/events"
	"agency_portal/internal/common"
	"agency_portal/internal/state"
)

// waitForSlice chờ slice trong store đạt giá trị mong muốn vì handler event
// chạy trong goroutine riêng.
func waitForSlice(t *testing.T, store *state.Store, name string, want interface{}) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got, ok := store.Get(name); ok && got == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	got, _ := store.Get(name)
	t.Fatalf("Slice %s không đạt giá trị mong muốn: muốn %v nhận %v", name, want, got)
}

func TestAdapterSubscribeRunsInitialQuery(t *testing.T) {
	events.ResetHandlers()
	store := state.NewStore(nil)
	adapter := NewAdapter(store)

	err := adapter.Subscribe(context.Background(), Subscription{
		Key:         "test:leads",
		SliceName:   "leads",
		Collections: []string{"leads"},
		Query: func(ctx context.Context) (interface{}, error) {
			return "snapshot-1", nil
		},
	})
	if err != nil {
		t.Fatalf("Subscribe không được lỗi: %v", err)
	}

	got, ok := store.Get("leads")
	if !ok || got != "snapshot-1" {
		t.Errorf("Subscribe phải chạy truy vấn lần đầu ngay, nhận %v", got)
	}
	if adapter.Count() != 1 {
		t.Errorf("Phải có 1 subscription, nhận %d", adapter.Count())
	}
}

func TestAdapterSubscribeDuplicateKey(t *testing.T) {
	events.ResetHandlers()
	store := state.NewStore(nil)
	adapter := NewAdapter(store)

	calls := 0
	sub := Subscription{
		Key:         "test:dup",
		SliceName:   "leads",
		Collections: []string{"leads"},
		Query: func(ctx context.Context) (interface{}, error) {
			calls++
			return calls, nil
		},
	}

	if err := adapter.Subscribe(context.Background(), sub); err != nil {
		t.Fatalf("Subscribe lần đầu lỗi: %v", err)
	}
	if err := adapter.Subscribe(context.Background(), sub); err != nil {
		t.Fatalf("Subscribe trùng key không được lỗi: %v", err)
	}

	if calls != 1 {
		t.Errorf("Subscribe trùng key không được chạy lại truy vấn, số lần chạy: %d", calls)
	}
	if adapter.Count() != 1 {
		t.Errorf("Subscription trùng key không được đăng ký thêm, nhận %d", adapter.Count())
	}
}

func TestAdapterRequeryOnDataChange(t *testing.T) {
	events.ResetHandlers()
	store := state.NewStore(nil)
	adapter := NewAdapter(store)

	snapshot := "ban-dau"
	err := adapter.Subscribe(context.Background(), Subscription{
		Key:         "test:tickets",
		SliceName:   "tickets",
		Collections: []string{"tickets"},
		Query: func(ctx context.Context) (interface{}, error) {
			return snapshot, nil
		},
	})
	if err != nil {
		t.Fatalf("Subscribe lỗi: %v", err)
	}

	snapshot = "sau-khi-ghi"
	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "tickets",
		Operation:      events.OpInsert,
	})
	waitForSlice(t, store, "tickets", "sau-khi-ghi")

	// Collection không liên quan thì không re-query
	snapshot = "khong-duoc-thay"
	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "projects",
		Operation:      events.OpInsert,
	})
	time.Sleep(100 * time.Millisecond)
	got, _ := store.Get("tickets")
	if got != "sau-khi-ghi" {
		t.Errorf("Thay đổi collection không liên quan không được re-query, nhận %v", got)
	}
}

func TestAdapterFallbackOnQueryError(t *testing.T) {
	events.ResetHandlers()
	store := state.NewStore(nil)
	adapter := NewAdapter(store)

	queryCalls := 0
	fallbackCalls := 0
	err := adapter.Subscribe(context.Background(), Subscription{
		Key:         "test:fallback",
		SliceName:   "tickets",
		Collections: []string{"tickets"},
		Query: func(ctx context.Context) (interface{}, error) {
			queryCalls++
			return nil, common.ErrMongoQuery
		},
		Fallback: func(ctx context.Context) (interface{}, error) {
			fallbackCalls++
			return "fallback-snapshot", nil
		},
	})
	if err != nil {
		t.Fatalf("Subscribe phải thành công nhờ fallback: %v", err)
	}

	got, _ := store.Get("tickets")
	if got != "fallback-snapshot" {
		t.Errorf("Lỗi truy vấn phải chuyển sang fallback, nhận %v", got)
	}

	// Đã degraded thì refresh sau dùng thẳng fallback, không thử lại query chính
	if err := adapter.Refresh(context.Background(), "test:fallback"); err != nil {
		t.Fatalf("Refresh sau khi degraded lỗi: %v", err)
	}
	if queryCalls != 1 {
		t.Errorf("Query chính chỉ được chạy 1 lần trước khi degraded, nhận %d", queryCalls)
	}
	if fallbackCalls != 2 {
		t.Errorf("Fallback phải được dùng cho refresh sau khi degraded, số lần chạy: %d", fallbackCalls)
	}
}

func TestAdapterNonQueryErrorKeepsSnapshot(t *testing.T) {
	events.ResetHandlers()
	store := state.NewStore(map[string]interface{}{"tickets": "snapshot-cu"})
	adapter := NewAdapter(store)

	fail := false
	err := adapter.Subscribe(context.Background(), Subscription{
		Key:         "test:neterr",
		SliceName:   "tickets",
		Collections: []string{"tickets"},
		Query: func(ctx context.Context) (interface{}, error) {
			if fail {
				return nil, errors.New("network unreachable")
			}
			return "snapshot-moi", nil
		},
		Fallback: func(ctx context.Context) (interface{}, error) {
			t.Error("Fallback không được gọi cho lỗi ngoài nhóm truy vấn")
			return nil, nil
		},
	})
	if err != nil {
		t.Fatalf("Subscribe lỗi: %v", err)
	}

	fail = true
	if err := adapter.Refresh(context.Background(), "test:neterr"); err == nil {
		t.Error("Refresh phải trả lỗi khi truy vấn thất bại")
	}
	got, _ := store.Get("tickets")
	if got != "snapshot-moi" {
		t.Errorf("Lỗi phải giữ nguyên snapshot cũ, nhận %v", got)
	}
}

func TestAdapterTeardown(t *testing.T) {
	events.ResetHandlers()
	store := state.NewStore(nil)
	adapter := NewAdapter(store)

	for _, key := range []string{"a", "b"} {
		err := adapter.Subscribe(context.Background(), Subscription{
			Key:         key,
			SliceName:   key,
			Collections: []string{"leads"},
			Query: func(ctx context.Context) (interface{}, error) {
				return "x", nil
			},
		})
		if err != nil {
			t.Fatalf("Subscribe %s lỗi: %v", key, err)
		}
	}

	adapter.Teardown()
	if adapter.Count() != 0 {
		t.Errorf("Teardown phải gỡ toàn bộ subscription, còn %d", adapter.Count())
	}

	if err := adapter.Refresh(context.Background(), "a"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Refresh sau teardown phải trả ErrNotFound, nhận %v", err)
	}

	// Teardown lần nữa phải an toàn
	adapter.Teardown()
}

func TestAdapterUnsubscribeKeepsSnapshot(t *testing.T) {
	events.ResetHandlers()
	store := state.NewStore(nil)
	adapter := NewAdapter(store)

	err := adapter.Subscribe(context.Background(), Subscription{
		Key:         "test:unsub",
		SliceName:   "leads",
		Collections: []string{"leads"},
		Query: func(ctx context.Context) (interface{}, error) {
			return "snapshot", nil
		},
	})
	if err != nil {
		t.Fatalf("Subscribe lỗi: %v", err)
	}

	adapter.Unsubscribe("test:unsub")
	if adapter.Count() != 0 {
		t.Errorf("Unsubscribe phải gỡ subscription, còn %d", adapter.Count())
	}
	got, ok := store.Get("leads")
	if !ok || got != "snapshot" {
		t.Errorf("Unsubscribe phải giữ snapshot cuối, nhận %v", got)
	}
}

// Event phát mỗi handler một goroutine nên hai lần ghi sát nhau có thể
// re-query cùng một subscription đồng thời; refresh phải tuần tự hóa
// theo subscription.
func TestAdapterRefreshSerialized(t *testing.T) {
	events.ResetHandlers()
	store := state.NewStore(map[string]interface{}{"tickets": nil})
	adapter := NewAdapter(store)

	var inFlight, maxSeen int32
	err := adapter.Subscribe(context.Background(), Subscription{
		Key:         "tickets:all",
		SliceName:   "tickets",
		Collections: []string{"tickets"},
		Query: func(ctx context.Context) (interface{}, error) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				m := atomic.LoadInt32(&maxSeen)
				if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return "snapshot", nil
		},
	})
	if err != nil {
		t.Fatalf("Subscribe lỗi: %v", err)
	}

	var wg stdsync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if refreshErr := adapter.Refresh(context.Background(), "tickets:all"); refreshErr != nil {
				t.Errorf("Refresh lỗi: %v", refreshErr)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&maxSeen); got != 1 {
		t.Errorf("Truy vấn của một subscription phải chạy tuần tự, mức đồng thời tối đa nhận %d", got)
	}
}
