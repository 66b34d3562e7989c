package portaldto

// CreateProjectInput là dữ liệu tạo project mới.
// Tier để trống sẽ nhận default "standard" khi insert.
type CreateProjectInput struct {
	CompanyName  string `json:"companyName" validate:"required,max=200,no_xss"`
	ClientName   string `json:"clientName" validate:"required,max=200,no_xss"`
	ClientEmail  string `json:"clientEmail" validate:"omitempty,email,max=254"`
	ClientPhone  string `json:"clientPhone" validate:"omitempty,phone"`
	WebsiteURL   string `json:"websiteUrl" validate:"omitempty,url,max=500"`
	Location     string `json:"location" validate:"omitempty,max=200,no_xss"`
	BusinessType string `json:"businessType" validate:"omitempty,max=100,no_xss"`
	Status       string `json:"status" validate:"omitempty,oneof=active paused completed"`
	Tier         string `json:"tier" validate:"omitempty,oneof=basic standard premium"`
	Progress     int    `json:"progress" validate:"omitempty,min=0,max=100"` // Clamp về [0,100] khi ghi
}

// UpdateProjectInput là dữ liệu cập nhật project.
// Progress dùng con trỏ để phân biệt "không đổi" với "về 0".
type UpdateProjectInput struct {
	CompanyName  string `json:"companyName" validate:"omitempty,max=200,no_xss"`
	ClientName   string `json:"clientName" validate:"omitempty,max=200,no_xss"`
	ClientEmail  string `json:"clientEmail" validate:"omitempty,email,max=254"`
	ClientPhone  string `json:"clientPhone" validate:"omitempty,phone"`
	WebsiteURL   string `json:"websiteUrl" validate:"omitempty,url,max=500"`
	Location     string `json:"location" validate:"omitempty,max=200,no_xss"`
	BusinessType string `json:"businessType" validate:"omitempty,max=100,no_xss"`
	Status       string `json:"status" validate:"omitempty,oneof=active paused completed"`
	Tier         string `json:"tier" validate:"omitempty,oneof=basic standard premium"`
	Progress     *int   `json:"progress" validate:"omitempty"`
}

// AddMilestoneInput thêm cột mốc mới vào project.
type AddMilestoneInput struct {
	Title  string `json:"title" validate:"required,max=200,no_xss"`
	Status string `json:"status" validate:"omitempty,oneof=pending current completed"` // Mặc định pending
	Date   int64  `json:"date" validate:"omitempty"`                                   // UnixMilli, mặc định hôm nay
}

// UpdateMilestoneInput cập nhật một cột mốc theo ID.
type UpdateMilestoneInput struct {
	MilestoneID string `json:"milestoneId" validate:"required"`
	Title       string `json:"title" validate:"omitempty,max=200,no_xss"`
	Status      string `json:"status" validate:"omitempty,oneof=pending current completed"`
	Date        int64  `json:"date" validate:"omitempty"`
}

// AssignClientsInput thay danh sách client được gán vào project.
type AssignClientsInput struct {
	ClientUIDs []string `json:"clientUids" validate:"required,dive,required,max=128"` // Firebase UID
}

// AddClientFileInput gắn file client đã upload vào project.
type AddClientFileInput struct {
	Name string `json:"name" validate:"required,max=300,no_xss"`
	URL  string `json:"url" validate:"required,url,max=1000"`
}

// AddInvoiceInput thêm hóa đơn vào project.
type AddInvoiceInput struct {
	Label    string  `json:"label" validate:"required,max=200,no_xss"`
	Amount   float64 `json:"amount" validate:"required,min=0"`
	URL      string  `json:"url" validate:"omitempty,url,max=1000"`
	IssuedAt int64   `json:"issuedAt" validate:"omitempty"` // UnixMilli, mặc định hiện tại
}
