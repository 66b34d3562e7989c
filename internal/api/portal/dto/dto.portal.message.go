package portaldto

// SendMessageInput gửi tin nhắn vào phòng chat của project.
// Timestamp hiển thị do server gán; clientTimestamp chỉ là fallback.
type SendMessageInput struct {
	ProjectID       string `json:"projectId" validate:"required,max=64"`
	Text            string `json:"text" validate:"required,max=4000"`
	ClientTimestamp int64  `json:"clientTimestamp" validate:"omitempty"` // UnixMilli phía client
}

// ListMessagesQuery phân trang tin nhắn theo project.
type ListMessagesQuery struct {
	ProjectID string `query:"projectId" validate:"required,max=64"`
	Limit     int64  `query:"limit" validate:"omitempty,min=1,max=500"` // Mặc định 100
	Before    int64  `query:"before" validate:"omitempty"`              // Chỉ lấy tin trước mốc này (UnixMilli)
}
