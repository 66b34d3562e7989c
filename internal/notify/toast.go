// Package notify quản lý thông báo toast cho người dùng.
// Toast hiện hành được giữ trong slice "notifications" của state store;
// tại một thời điểm chỉ có tối đa một toast hiển thị.
package notify

import (
	"sync"
	"time"

	"agency_portal/internal/state"

	"github.com/google/uuid"
)

// SliceName là tên slice trong state store chứa toast hiện hành.
const SliceName = "notifications"

// Kind phân loại toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindLoading Kind = "loading"
)

// DefaultDismissAfter là thời gian tự ẩn mặc định cho toast thường.
const DefaultDismissAfter = 4 * time.Second

// Toast là một thông báo hiển thị cho người dùng.
type Toast struct {
	ID        string `json:"id"`
	Kind      Kind   `json:"kind"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"` // UnixMilli
}

// Notifier phát toast vào state store.
type Notifier struct {
	store        *state.Store
	dismissAfter time.Duration

	mu        sync.Mutex
	currentID string
	timer     *time.Timer
}

// NewNotifier tạo notifier ghi vào store được cung cấp.
// dismissAfter <= 0 sẽ dùng DefaultDismissAfter.
func NewNotifier(store *state.Store, dismissAfter time.Duration) *Notifier {
	if dismissAfter <= 0 {
		dismissAfter = DefaultDismissAfter
	}
	return &Notifier{store: store, dismissAfter: dismissAfter}
}

// Show hiển thị toast mới, thay thế toast đang hiển thị (nếu có).
// Toast tự ẩn sau dismissAfter. Trả về ID của toast.
func (n *Notifier) Show(kind Kind, text string) string {
	return n.show(kind, text, true)
}

// Success là shorthand cho Show(KindSuccess, text).
func (n *Notifier) Success(text string) string {
	return n.Show(KindSuccess, text)
}

// Error là shorthand cho Show(KindError, text).
func (n *Notifier) Error(text string) string {
	return n.Show(KindError, text)
}

// LoadingHandle điều khiển một toast loading đang hiển thị.
// Success/Error ẩn toast loading trước rồi mới hiển thị toast kết quả.
type LoadingHandle struct {
	notifier *Notifier
	id       string
}

// ShowLoading hiển thị toast loading (không tự ẩn) và trả về handle.
func (n *Notifier) ShowLoading(text string) *LoadingHandle {
	id := n.show(KindLoading, text, false)
	return &LoadingHandle{notifier: n, id: id}
}

// Success ẩn toast loading và hiển thị toast thành công.
func (h *LoadingHandle) Success(text string) {
	h.notifier.Dismiss(h.id)
	h.notifier.Show(KindSuccess, text)
}

// Error ẩn toast loading và hiển thị toast lỗi.
func (h *LoadingHandle) Error(text string) {
	h.notifier.Dismiss(h.id)
	h.notifier.Show(KindError, text)
}

// Dismiss ẩn toast theo ID nếu nó vẫn đang hiển thị.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	if n.currentID != id {
		n.mu.Unlock()
		return
	}
	n.clearLocked()
	n.mu.Unlock()

	n.store.Set(SliceName, []Toast{})
}

// Current trả về toast đang hiển thị (nil nếu không có).
func (n *Notifier) Current() *Toast {
	value, ok := n.store.Get(SliceName)
	if !ok {
		return nil
	}
	list, ok := value.([]Toast)
	if !ok || len(list) == 0 {
		return nil
	}
	t := list[0]
	return &t
}

func (n *Notifier) show(kind Kind, text string, autoDismiss bool) string {
	toast := Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Text:      text,
		CreatedAt: time.Now().UnixMilli(),
	}

	n.mu.Lock()
	n.clearLocked()
	n.currentID = toast.ID
	if autoDismiss {
		id := toast.ID
		n.timer = time.AfterFunc(n.dismissAfter, func() {
			n.Dismiss(id)
		})
	}
	n.mu.Unlock()

	// Thay thế toàn bộ slice: tối đa một toast hiển thị
	n.store.Set(SliceName, []Toast{toast})
	return toast.ID
}

// clearLocked hủy timer và currentID. Caller phải giữ lock.
func (n *Notifier) clearLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.currentID = ""
}
