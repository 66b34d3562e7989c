package portalmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Message là một tin nhắn chat trong phòng chat của dự án.
type Message struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProjectID  string             `json:"projectId" bson:"projectId" index:"compound:projectId_timestamp"`
	SenderID   string             `json:"senderId" bson:"senderId"` // Firebase UID
	SenderName string             `json:"senderName" bson:"senderName"`
	Text       string             `json:"text" bson:"text"`
	// Timestamp do server gán; ClientTimestamp là mốc phía client,
	// chỉ dùng hiển thị tạm khi Timestamp chưa kịp gán.
	Timestamp       int64 `json:"timestamp" bson:"timestamp" index:"compound:projectId_timestamp"`
	ClientTimestamp int64 `json:"clientTimestamp,omitempty" bson:"clientTimestamp,omitempty"`
	CreatedAt       int64 `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt       int64 `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// DisplayTimestamp trả về mốc thời gian dùng để hiển thị và sắp xếp.
func (m *Message) DisplayTimestamp() int64 {
	if m.Timestamp > 0 {
		return m.Timestamp
	}
	return m.ClientTimestamp
}
