// Package portaldto - DTO input/output cho domain portal.
package portaldto

// CreateLeadInput là dữ liệu tạo lead mới.
// Status phải truyền tường minh, không có default ngầm.
type CreateLeadInput struct {
	CompanyName  string `json:"companyName" validate:"required,max=200,no_xss"`           // Tên công ty (bắt buộc)
	ClientName   string `json:"clientName" validate:"required,max=200,no_xss"`            // Tên người liên hệ (bắt buộc)
	ClientEmail  string `json:"clientEmail" validate:"omitempty,email,max=254"`           // Email liên hệ
	ClientPhone  string `json:"clientPhone" validate:"omitempty,phone"`                   // Số điện thoại liên hệ
	WebsiteURL   string `json:"websiteUrl" validate:"omitempty,url,max=500"`              // Website hiện tại của khách
	Location     string `json:"location" validate:"omitempty,max=200,no_xss"`             // Khu vực
	BusinessType string `json:"businessType" validate:"omitempty,max=100,no_xss"`         // Ngành nghề
	Status       string `json:"status" validate:"required,oneof=noted demo-sent demo-complete"` // Trạng thái (bắt buộc, tường minh)
}

// UpdateLeadInput là dữ liệu cập nhật lead. Chỉ các field khác rỗng được ghi.
type UpdateLeadInput struct {
	CompanyName  string `json:"companyName" validate:"omitempty,max=200,no_xss"`
	ClientName   string `json:"clientName" validate:"omitempty,max=200,no_xss"`
	ClientEmail  string `json:"clientEmail" validate:"omitempty,email,max=254"`
	ClientPhone  string `json:"clientPhone" validate:"omitempty,phone"`
	WebsiteURL   string `json:"websiteUrl" validate:"omitempty,url,max=500"`
	Location     string `json:"location" validate:"omitempty,max=200,no_xss"`
	BusinessType string `json:"businessType" validate:"omitempty,max=100,no_xss"`
	Status       string `json:"status" validate:"omitempty,oneof=noted demo-sent demo-complete"`
}

// AddDemoFileInput gắn URL file demo đã upload vào lead.
type AddDemoFileInput struct {
	URL string `json:"url" validate:"required,url,max=1000"` // Download URL của file demo
}
