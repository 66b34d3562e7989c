package sync

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	portalmodels "agency_portal/internal/api/portal/models"
)

func newTicket(title string, createdAt, submittedAt int64) portalmodels.Ticket {
	return portalmodels.Ticket{
		ID:          primitive.NewObjectID(),
		Title:       title,
		CreatedAt:   createdAt,
		SubmittedAt: submittedAt,
	}
}

func TestMergeTicketsDedupe(t *testing.T) {
	shared := newTicket("ticket chung", 100, 0)

	own := []portalmodels.Ticket{shared, newTicket("ticket riêng", 200, 0)}

	// Cùng ticket xuất hiện ở nguồn sau với dữ liệu mới hơn
	updated := shared
	updated.Title = "ticket chung (đã sửa)"
	byProject := []portalmodels.Ticket{updated}

	merged := MergeTickets(own, byProject)

	if len(merged) != 2 {
		t.Fatalf("Ticket trùng ID phải được khử, muốn 2 nhận %d", len(merged))
	}
	for _, ticket := range merged {
		if ticket.ID == shared.ID && ticket.Title != "ticket chung (đã sửa)" {
			t.Errorf("Bản ở nguồn sau phải thắng, nhận được title %q", ticket.Title)
		}
	}
}

func TestMergeTicketsSortNewestFirst(t *testing.T) {
	oldest := newTicket("cũ nhất", 100, 0)
	newest := newTicket("mới nhất", 300, 0)
	legacy := newTicket("chỉ có submittedAt", 0, 200)
	noDate := newTicket("không có mốc thời gian", 0, 0)

	merged := MergeTickets(
		[]portalmodels.Ticket{noDate, oldest},
		[]portalmodels.Ticket{legacy, newest},
	)

	want := []string{"mới nhất", "chỉ có submittedAt", "cũ nhất", "không có mốc thời gian"}
	if len(merged) != len(want) {
		t.Fatalf("Số ticket sau merge không đúng: muốn %d nhận %d", len(want), len(merged))
	}
	for i, title := range want {
		if merged[i].Title != title {
			t.Errorf("Vị trí %d: muốn %q nhận %q", i, title, merged[i].Title)
		}
	}
}

func TestSortTicketsStable(t *testing.T) {
	first := newTicket("a", 100, 0)
	second := newTicket("b", 100, 0)
	tickets := []portalmodels.Ticket{first, second}

	SortTicketsNewestFirst(tickets)

	if tickets[0].Title != "a" || tickets[1].Title != "b" {
		t.Errorf("Ticket cùng mốc thời gian phải giữ nguyên thứ tự, nhận %q %q", tickets[0].Title, tickets[1].Title)
	}
}

func TestMergeTicketsEmpty(t *testing.T) {
	merged := MergeTickets(nil, []portalmodels.Ticket{})
	if merged == nil {
		t.Fatal("Merge nguồn rỗng phải trả về slice rỗng, không phải nil")
	}
	if len(merged) != 0 {
		t.Errorf("Merge nguồn rỗng phải trả về 0 ticket, nhận %d", len(merged))
	}
}
