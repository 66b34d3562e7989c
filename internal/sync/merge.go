package sync

import (
	"sort"

	portalmodels "agency_portal/internal/api/portal/models"
)

// MergeTickets gộp ticket từ nhiều nguồn truy vấn, khử trùng lặp theo ID.
// Cùng một ticket xuất hiện ở nhiều nguồn thì bản ở nguồn sau thắng.
// Kết quả sắp xếp mới nhất trước theo mốc thời gian hiệu lực.
func MergeTickets(sources ...[]portalmodels.Ticket) []portalmodels.Ticket {
	byID := map[string]int{}
	merged := make([]portalmodels.Ticket, 0)

	for _, source := range sources {
		for _, ticket := range source {
			id := ticket.ID.Hex()
			if idx, seen := byID[id]; seen {
				merged[idx] = ticket
				continue
			}
			byID[id] = len(merged)
			merged = append(merged, ticket)
		}
	}

	SortTicketsNewestFirst(merged)
	return merged
}

// SortTicketsNewestFirst sắp xếp ticket giảm dần theo mốc thời gian hiệu lực
// (createdAt, thiếu thì submittedAt, thiếu cả hai coi như 0 và xếp cuối).
// Sort ổn định để các bản ghi cùng mốc giữ nguyên thứ tự nguồn.
func SortTicketsNewestFirst(tickets []portalmodels.Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].EffectiveDate() > tickets[j].EffectiveDate()
	})
}
