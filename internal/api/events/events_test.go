package events

import (
	"context"
	"testing"
	"time"
)

// Một handler panic không được làm sập app hay chặn các handler khác.
func TestEmitDataChangedIsolatesPanic(t *testing.T) {
	ResetHandlers()
	defer ResetHandlers()

	done := make(chan DataChangeEvent, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		panic("handler hỏng")
	})
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		done <- e
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "leads",
		Operation:      OpInsert,
	})

	select {
	case e := <-done:
		if e.CollectionName != "leads" || e.Operation != OpInsert {
			t.Errorf("Handler còn lại phải nhận đúng event, nhận %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Handler còn lại vẫn phải chạy khi một handler khác panic")
	}
}
