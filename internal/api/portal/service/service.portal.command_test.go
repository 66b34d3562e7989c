package portalsvc

import (
	"errors"
	"testing"
	"time"

	"agency_portal/internal/common"
	"agency_portal/internal/notify"
	"agency_portal/internal/state"
)

func TestRunCommandSuccessToast(t *testing.T) {
	store := state.NewStore(map[string]interface{}{notify.SliceName: []notify.Toast{}})
	notifier := notify.NewNotifier(store, time.Minute)

	var seen []notify.Kind
	store.Subscribe(notify.SliceName, func(name string, value interface{}) {
		if list, ok := value.([]notify.Toast); ok && len(list) > 0 {
			seen = append(seen, list[0].Kind)
		}
	})

	err := runCommand(notifier, "Đang lưu...", "Đã lưu", func() error {
		return nil
	})
	if err != nil {
		t.Fatalf("runCommand không được lỗi: %v", err)
	}

	want := []notify.Kind{notify.KindLoading, notify.KindSuccess}
	if len(seen) != len(want) {
		t.Fatalf("Chuỗi toast không đúng: muốn %v nhận %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("Toast thứ %d: muốn %s nhận %s", i, want[i], seen[i])
		}
	}
	if toast := notifier.Current(); toast == nil || toast.Text != "Đã lưu" {
		t.Errorf("Toast cuối phải là thông báo thành công, nhận %v", toast)
	}
}

func TestRunCommandValidationMessageVerbatim(t *testing.T) {
	store := state.NewStore(map[string]interface{}{notify.SliceName: []notify.Toast{}})
	notifier := notify.NewNotifier(store, time.Minute)

	validationErr := common.NewError(common.ErrCodeValidationInput,
		"Trường Title không hợp lệ (rule: required)", common.StatusBadRequest, nil)

	err := runCommand(notifier, "Đang lưu...", "Đã lưu", func() error {
		return validationErr
	})
	if !errors.Is(err, validationErr) {
		t.Fatalf("runCommand phải trả lại lỗi gốc, nhận %v", err)
	}

	toast := notifier.Current()
	if toast == nil || toast.Kind != notify.KindError {
		t.Fatalf("Phải hiển thị toast lỗi, nhận %v", toast)
	}
	if toast.Text != "Trường Title không hợp lệ (rule: required)" {
		t.Errorf("Lỗi validation phải hiển thị nguyên văn, nhận %q", toast.Text)
	}
}

func TestRunCommandGenericErrorHidesDetails(t *testing.T) {
	store := state.NewStore(map[string]interface{}{notify.SliceName: []notify.Toast{}})
	notifier := notify.NewNotifier(store, time.Minute)

	err := runCommand(notifier, "Đang lưu...", "Đã lưu", func() error {
		return errors.New("mongo: connection reset")
	})
	if err == nil {
		t.Fatal("runCommand phải trả lỗi")
	}

	toast := notifier.Current()
	if toast == nil || toast.Text != common.MsgUserActionFailed {
		t.Errorf("Lỗi hệ thống phải dùng câu chung, nhận %v", toast)
	}
}

func TestRunCommandNilNotifier(t *testing.T) {
	called := false
	if err := runCommand(nil, "", "", func() error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("runCommand với notifier nil không được lỗi: %v", err)
	}
	if !called {
		t.Error("fn vẫn phải được chạy khi notifier nil")
	}
}

func TestClampProgress(t *testing.T) {
	cases := []struct{ in, want int }{
		{-10, 0},
		{0, 0},
		{55, 55},
		{100, 100},
		{150, 100},
	}
	for _, tc := range cases {
		if got := ClampProgress(tc.in); got != tc.want {
			t.Errorf("ClampProgress(%d): muốn %d nhận %d", tc.in, tc.want, got)
		}
	}
}
