package portalmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Loại bản ghi gốc của một record đã archive.
const (
	ArchivedTypeLead    = "lead"
	ArchivedTypeProject = "project"
)

// ArchivedRecord giữ snapshot đầy đủ của lead/project đã xóa mềm.
// Vài trường nhận diện được denormalize ra ngoài để hiển thị danh sách
// mà không phải đọc OriginalData.
type ArchivedRecord struct {
	ID           primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	OriginalType string                 `json:"originalType" bson:"originalType" index:"single"`
	OriginalID   string                 `json:"originalId" bson:"originalId" index:"single"`
	CompanyName  string                 `json:"companyName" bson:"companyName,omitempty"`
	ClientName   string                 `json:"clientName" bson:"clientName,omitempty"`
	ClientEmail  string                 `json:"clientEmail" bson:"clientEmail,omitempty"`
	OriginalData map[string]interface{} `json:"originalData" bson:"originalData"`
	ArchivedBy   string                 `json:"archivedBy" bson:"archivedBy,omitempty"` // Firebase UID
	ArchivedAt   int64                  `json:"archivedAt" bson:"archivedAt" index:"single,order:-1"`
	CreatedAt    int64                  `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt    int64                  `json:"updatedAt" bson:"updatedAt,omitempty"`
}
