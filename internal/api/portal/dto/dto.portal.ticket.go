package portaldto

// CreateTicketInput là dữ liệu client gửi ticket hỗ trợ.
// ClientID không nhận từ body: server luôn gán UID của người gọi.
type CreateTicketInput struct {
	Title       string `json:"title" validate:"required,max=200,no_xss"`
	Description string `json:"description" validate:"omitempty,max=5000"` // Cho phép rich text, sanitize khi ghi
	ProjectID   string `json:"projectId" validate:"omitempty,max=64"`
	Urgency     string `json:"urgency" validate:"required,oneof=asap day week month"`
}

// UpdateTicketInput cập nhật ticket (chủ yếu đổi trạng thái).
type UpdateTicketInput struct {
	Title       string `json:"title" validate:"omitempty,max=200,no_xss"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	Status      string `json:"status" validate:"omitempty,oneof=open in-progress resolved"`
	Urgency     string `json:"urgency" validate:"omitempty,oneof=asap day week month"`
}
