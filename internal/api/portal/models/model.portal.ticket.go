package portalmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Trạng thái của Ticket.
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in-progress"
	TicketStatusResolved   = "resolved"
)

// TicketStatuses liệt kê các trạng thái hợp lệ của Ticket.
var TicketStatuses = []string{TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved}

// Mức độ khẩn cấp của Ticket.
const (
	UrgencyAsap  = "asap"
	UrgencyDay   = "day"
	UrgencyWeek  = "week"
	UrgencyMonth = "month"
)

// TicketUrgencies liệt kê các mức độ khẩn cấp hợp lệ.
var TicketUrgencies = []string{UrgencyAsap, UrgencyDay, UrgencyWeek, UrgencyMonth}

// Ticket là yêu cầu hỗ trợ do client gửi.
// ClientID luôn là UID của người gửi; SubmittedByID là trường cũ,
// chỉ còn trên dữ liệu lịch sử và vẫn được đọc khi truy vấn.
type Ticket struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Description   string             `json:"description" bson:"description,omitempty"`
	ProjectID     string             `json:"projectId" bson:"projectId,omitempty" index:"single"`
	ClientID      string             `json:"clientId" bson:"clientId,omitempty" index:"single"` // Firebase UID của người gửi
	SubmittedByID string             `json:"submittedById,omitempty" bson:"submittedById,omitempty" index:"single"`
	Status        string             `json:"status" bson:"status" index:"single"`
	Urgency       string             `json:"urgency" bson:"urgency"`
	SubmittedAt   int64              `json:"submittedAt" bson:"submittedAt,omitempty"` // UnixMilli
	CreatedAt     int64              `json:"createdAt" bson:"createdAt,omitempty" index:"single,order:-1"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// EffectiveDate là mốc thời gian dùng để sắp xếp ticket.
// Ưu tiên createdAt, thiếu thì dùng submittedAt, thiếu cả hai trả về 0.
func (t *Ticket) EffectiveDate() int64 {
	if t.CreatedAt > 0 {
		return t.CreatedAt
	}
	if t.SubmittedAt > 0 {
		return t.SubmittedAt
	}
	return 0
}
