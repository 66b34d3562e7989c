// Package authmodels chứa model người dùng của portal.
package authmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Vai trò người dùng. Admin/manager/support là nhân sự nội bộ,
// client là tài khoản khách hàng do admin tạo.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleSupport = "support"
	RoleClient  = "client"
)

// UserRoles liệt kê các vai trò hợp lệ.
var UserRoles = []string{RoleAdmin, RoleManager, RoleSupport, RoleClient}

// StaffRoles là các vai trò nhân sự nội bộ.
var StaffRoles = []string{RoleAdmin, RoleManager, RoleSupport}

// IsStaffRole báo role có phải nhân sự nội bộ không.
func IsStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User là hồ sơ người dùng trong MongoDB, định danh bằng Firebase UID.
// Thông tin đăng nhập (email/password) do Firebase Auth quản lý;
// document này chỉ giữ hồ sơ và vai trò.
type User struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UID         string             `json:"uid" bson:"uid" index:"unique"` // Firebase UID
	Email       string             `json:"email" bson:"email,omitempty" index:"unique,sparse"`
	DisplayName string             `json:"displayName" bson:"displayName,omitempty"`
	Role        string             `json:"role" bson:"role" default:"client" index:"single"`
	Company     string             `json:"company" bson:"company,omitempty"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt,omitempty"` // UnixMilli
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt,omitempty"`
}
