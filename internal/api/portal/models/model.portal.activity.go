package portalmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Loại sự kiện activity log.
const (
	ActivityLeadCreated      = "lead_created"
	ActivityLeadUpdated      = "lead_updated"
	ActivityLeadDeleted      = "lead_deleted"
	ActivityLeadConverted    = "lead_converted"
	ActivityProjectCreated   = "project_created"
	ActivityProjectUpdated   = "project_updated"
	ActivityProjectDeleted   = "project_deleted"
	ActivityTicketCreated    = "ticket_created"
	ActivityTicketUpdated    = "ticket_updated"
	ActivityTicketDeleted    = "ticket_deleted"
	ActivityRecordArchived   = "record_archived"
	ActivityRecordRestored   = "record_restored"
	ActivityFileUploaded     = "file_uploaded"
	ActivityMilestoneUpdated = "milestone_updated"
)

// Activity là một dòng trong nhật ký hoạt động.
// Ghi activity là best-effort: lỗi ghi không được chặn thao tác chính.
type Activity struct {
	ID        primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	Type      string                 `json:"type" bson:"type" index:"single"`
	Label     string                 `json:"label" bson:"label"` // Mô tả ngắn cho người đọc
	Data      map[string]interface{} `json:"data" bson:"data,omitempty"`
	UserID    string                 `json:"userId" bson:"userId,omitempty" index:"single"` // Firebase UID
	Timestamp int64                  `json:"timestamp" bson:"timestamp" index:"single,order:-1"`
	CreatedAt int64                  `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt int64                  `json:"updatedAt" bson:"updatedAt,omitempty"`
}
