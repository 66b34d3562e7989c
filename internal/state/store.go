// Package state cung cấp store trạng thái trung tâm theo tên slice.
// Mỗi slice giữ một snapshot dữ liệu (ví dụ danh sách leads, projects);
// Set thay thế toàn bộ snapshot và thông báo đồng bộ cho các listener đã đăng ký.
package state

import (
	"sync"

	"agency_portal/internal/logger"
)

// Wildcard là key đặc biệt: listener đăng ký với Wildcard nhận thông báo
// cho mọi slice thay đổi.
const Wildcard = "*"

// Listener nhận thông báo khi slice thay đổi.
// name là tên slice, value là snapshot mới.
type Listener func(name string, value interface{})

// Store giữ các slice trạng thái theo tên và registry listener.
// Thread-safety được đảm bảo thông qua sync.RWMutex.
type Store struct {
	mu        sync.RWMutex
	slices    map[string]interface{}
	defaults  map[string]interface{}     // Giá trị mặc định để Reset khôi phục
	listeners map[string]map[int64]Listener // name -> id -> listener
	nextID    int64
}

// NewStore tạo store mới với các slice mặc định được cung cấp.
// defaults có thể nil; khi đó store bắt đầu rỗng.
func NewStore(defaults map[string]interface{}) *Store {
	s := &Store{
		slices:    make(map[string]interface{}),
		defaults:  make(map[string]interface{}),
		listeners: make(map[string]map[int64]Listener),
	}
	for name, value := range defaults {
		s.slices[name] = value
		s.defaults[name] = value
	}
	return s
}

// Get trả về snapshot hiện tại của slice theo tên.
func (s *Store) Get(name string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, exists := s.slices[name]
	return value, exists
}

// Snapshot trả về bản sao map của toàn bộ các slice hiện tại.
func (s *Store) Snapshot() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]interface{}, len(s.slices))
	for name, value := range s.slices {
		out[name] = value
	}
	return out
}

// Set thay thế snapshot của slice và thông báo đồng bộ cho các listener.
// Thứ tự thông báo: listener của slice trước, wildcard sau.
func (s *Store) Set(name string, value interface{}) {
	s.mu.Lock()
	s.slices[name] = value
	targets := s.collectListeners(name)
	s.mu.Unlock()

	// Thông báo ngoài lock để listener có thể gọi lại store
	for _, fn := range targets {
		notifyListener(fn, name, value)
	}
}

// Subscribe đăng ký listener cho slice theo tên (hoặc Wildcard cho mọi slice).
// Trả về closure hủy đăng ký; gọi nhiều lần là an toàn.
func (s *Store) Subscribe(name string, fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listeners[name] == nil {
		s.listeners[name] = make(map[int64]Listener)
	}
	s.nextID++
	id := s.nextID
	s.listeners[name][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners[name], id)
	}
}

// Reset khôi phục các slice được nêu tên về giá trị mặc định và thông báo.
// Không truyền tên nào thì reset toàn bộ slice có default.
func (s *Store) Reset(names ...string) {
	s.mu.Lock()
	if len(names) == 0 {
		names = make([]string, 0, len(s.defaults))
		for name := range s.defaults {
			names = append(names, name)
		}
	}
	type change struct {
		name    string
		value   interface{}
		targets []Listener
	}
	changes := make([]change, 0, len(names))
	for _, name := range names {
		value := s.defaults[name]
		s.slices[name] = value
		changes = append(changes, change{name: name, value: value, targets: s.collectListeners(name)})
	}
	s.mu.Unlock()

	for _, ch := range changes {
		for _, fn := range ch.targets {
			notifyListener(fn, ch.name, ch.value)
		}
	}
}

// collectListeners gom listener của slice và wildcard theo thứ tự đăng ký.
// Caller phải giữ lock.
func (s *Store) collectListeners(name string) []Listener {
	out := make([]Listener, 0, len(s.listeners[name])+len(s.listeners[Wildcard]))
	out = appendListenersInOrder(out, s.listeners[name])
	if name != Wildcard {
		out = appendListenersInOrder(out, s.listeners[Wildcard])
	}
	return out
}

// appendListenersInOrder thêm listener theo thứ tự id tăng dần (thứ tự đăng ký).
func appendListenersInOrder(dst []Listener, m map[int64]Listener) []Listener {
	if len(m) == 0 {
		return dst
	}
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	// Insertion sort: số listener mỗi slice nhỏ
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	for _, id := range ids {
		dst = append(dst, m[id])
	}
	return dst
}

// notifyListener gọi listener với recover; panic được log và không lan truyền.
func notifyListener(fn Listener, name string, value interface{}) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetErrorLogger().Errorf("Listener của slice %s panic: %v", name, r)
		}
	}()
	fn(name, value)
}
