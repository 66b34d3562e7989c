package global

import (
	"agency_portal/config"
	"agency_portal/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// Portal_CollectionName chứa tên các collection trong MongoDB
type Portal_CollectionName struct {
	Leads    string // Tên collection cho khách hàng tiềm năng
	Projects string // Tên collection cho dự án
	Tickets  string // Tên collection cho ticket hỗ trợ
	Messages string // Tên collection cho tin nhắn theo dự án
	Activity string // Tên collection cho nhật ký hoạt động
	Archived string // Tên collection cho bản ghi đã lưu trữ
	Users    string // Tên collection cho hồ sơ người dùng
}

// Các biến toàn cục
var Validate *validator.Validate                                              // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                             // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                                        // Cấu hình của server
var ColNames Portal_CollectionName = *new(Portal_CollectionName)              // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
