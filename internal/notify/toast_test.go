package notify

import (
	"testing"
	"time"

	"agency_portal/internal/state"
)

func newTestNotifier() (*Notifier, *state.Store) {
	store := state.NewStore(map[string]interface{}{
		SliceName: []Toast{},
	})
	return NewNotifier(store, time.Hour), store
}

func TestNotifierShowSingleVisible(t *testing.T) {
	n, _ := newTestNotifier()

	n.Show(KindInfo, "toast thứ nhất")
	n.Show(KindSuccess, "toast thứ hai")

	current := n.Current()
	if current == nil {
		t.Fatal("Phải có toast đang hiển thị")
	}
	if current.Text != "toast thứ hai" || current.Kind != KindSuccess {
		t.Errorf("Toast mới phải thay thế toast cũ, nhận được %+v", current)
	}
}

func TestNotifierDismiss(t *testing.T) {
	n, _ := newTestNotifier()

	id := n.Show(KindInfo, "toast")
	n.Dismiss(id)

	if n.Current() != nil {
		t.Error("Toast phải bị ẩn sau Dismiss")
	}

	// Dismiss với ID cũ không ảnh hưởng toast mới
	n.Show(KindInfo, "toast mới")
	n.Dismiss(id)
	if n.Current() == nil {
		t.Error("Dismiss với ID cũ không được ẩn toast mới")
	}
}

func TestNotifierAutoDismiss(t *testing.T) {
	store := state.NewStore(nil)
	n := NewNotifier(store, 20*time.Millisecond)

	n.Show(KindInfo, "toast tự ẩn")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if n.Current() == nil {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("Toast phải tự ẩn sau dismissAfter")
}

func TestLoadingHandleSuccess(t *testing.T) {
	n, _ := newTestNotifier()

	handle := n.ShowLoading("đang lưu...")

	current := n.Current()
	if current == nil || current.Kind != KindLoading {
		t.Fatalf("Phải có toast loading đang hiển thị, nhận %+v", current)
	}

	handle.Success("đã lưu")

	current = n.Current()
	if current == nil {
		t.Fatal("Phải có toast thành công sau handle.Success")
	}
	if current.Kind != KindSuccess || current.Text != "đã lưu" {
		t.Errorf("Toast loading phải được thay bằng toast thành công, nhận %+v", current)
	}
}

func TestLoadingHandleError(t *testing.T) {
	n, _ := newTestNotifier()

	handle := n.ShowLoading("đang xóa...")
	handle.Error("xóa thất bại")

	current := n.Current()
	if current == nil || current.Kind != KindError || current.Text != "xóa thất bại" {
		t.Errorf("Toast loading phải được thay bằng toast lỗi, nhận %+v", current)
	}
}
