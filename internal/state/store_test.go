package state

import (
	"testing"
)

func TestStoreSetGet(t *testing.T) {
	store := NewStore(map[string]interface{}{
		"leads": []string{},
	})

	value, exists := store.Get("leads")
	if !exists {
		t.Fatal("Slice leads phải tồn tại sau khi khởi tạo với default")
	}
	if list, ok := value.([]string); !ok || len(list) != 0 {
		t.Errorf("Giá trị mặc định của leads phải là slice rỗng, nhận được %v", value)
	}

	store.Set("leads", []string{"a", "b"})
	value, _ = store.Get("leads")
	if list, ok := value.([]string); !ok || len(list) != 2 {
		t.Errorf("Set phải thay thế toàn bộ snapshot, nhận được %v", value)
	}

	if _, exists := store.Get("unknown"); exists {
		t.Error("Slice chưa được set không được tồn tại")
	}
}

func TestStoreSubscribeNotify(t *testing.T) {
	store := NewStore(nil)

	var got []string
	unsubscribe := store.Subscribe("tickets", func(name string, value interface{}) {
		got = append(got, name)
	})

	store.Set("tickets", []int{1})
	store.Set("projects", []int{2}) // Không phải slice đã đăng ký

	if len(got) != 1 || got[0] != "tickets" {
		t.Errorf("Listener chỉ được gọi cho slice đã đăng ký, nhận được %v", got)
	}

	unsubscribe()
	store.Set("tickets", []int{3})
	if len(got) != 1 {
		t.Error("Listener không được gọi sau khi hủy đăng ký")
	}

	// Hủy đăng ký lần nữa phải an toàn
	unsubscribe()
}

func TestStoreWildcardOrder(t *testing.T) {
	store := NewStore(nil)

	var order []string
	store.Subscribe("leads", func(name string, value interface{}) {
		order = append(order, "slice")
	})
	store.Subscribe(Wildcard, func(name string, value interface{}) {
		order = append(order, "wildcard:"+name)
	})

	store.Set("leads", 1)
	store.Set("projects", 2)

	want := []string{"slice", "wildcard:leads", "wildcard:projects"}
	if len(order) != len(want) {
		t.Fatalf("Số lần thông báo không đúng: muốn %v, nhận %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Thứ tự thông báo sai tại vị trí %d: muốn %s, nhận %s", i, want[i], order[i])
		}
	}
}

func TestStoreListenerPanicRecovered(t *testing.T) {
	store := NewStore(nil)

	called := false
	store.Subscribe("leads", func(name string, value interface{}) {
		panic("listener hỏng")
	})
	store.Subscribe("leads", func(name string, value interface{}) {
		called = true
	})

	// Không được panic lan ra ngoài
	store.Set("leads", 1)

	if !called {
		t.Error("Listener sau phải vẫn được gọi khi listener trước panic")
	}
}

func TestStoreReset(t *testing.T) {
	store := NewStore(map[string]interface{}{
		"leads":    []string{},
		"projects": []string{},
	})

	store.Set("leads", []string{"x"})
	store.Set("projects", []string{"y"})

	notified := map[string]bool{}
	store.Subscribe(Wildcard, func(name string, value interface{}) {
		notified[name] = true
	})

	store.Reset()

	value, _ := store.Get("leads")
	if list, ok := value.([]string); !ok || len(list) != 0 {
		t.Errorf("Reset phải khôi phục default, nhận được %v", value)
	}
	if !notified["leads"] || !notified["projects"] {
		t.Errorf("Reset phải thông báo cho listener, nhận được %v", notified)
	}

	// Reset một slice cụ thể
	store.Set("leads", []string{"z"})
	store.Reset("leads")
	value, _ = store.Get("leads")
	if list, ok := value.([]string); !ok || len(list) != 0 {
		t.Errorf("Reset theo tên phải khôi phục default cho slice đó, nhận được %v", value)
	}
}
