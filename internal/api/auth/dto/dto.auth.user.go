// Package authdto - DTO cho domain auth.
package authdto

// CreateClientInput là dữ liệu admin tạo tài khoản client mới.
// Password tối thiểu 6 ký tự theo ràng buộc của Firebase Auth.
type CreateClientInput struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=6,max=128"`
	DisplayName string `json:"displayName" validate:"required,max=200,no_xss"`
	Company     string `json:"company" validate:"omitempty,max=200,no_xss"`
}

// CreateClientResult trả về tài khoản vừa tạo.
type CreateClientResult struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	Company     string `json:"company,omitempty"`
}

// UpdateProfileInput cập nhật hồ sơ của chính người gọi.
type UpdateProfileInput struct {
	DisplayName string `json:"displayName" validate:"omitempty,max=200,no_xss"`
	Company     string `json:"company" validate:"omitempty,max=200,no_xss"`
}

// ChangePasswordInput đổi mật khẩu của chính người gọi.
// CurrentPassword được xác thực lại qua Identity Toolkit trước khi đổi.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required,max=128"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=128"`
}
