// Package portalmodels chứa các model MongoDB cho portal của agency.
package portalmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Trạng thái của Lead.
const (
	LeadStatusNoted        = "noted"         // Mới ghi nhận
	LeadStatusDemoSent     = "demo-sent"     // Đã gửi demo
	LeadStatusDemoComplete = "demo-complete" // Demo hoàn tất
)

// LeadStatuses liệt kê các trạng thái hợp lệ của Lead.
var LeadStatuses = []string{LeadStatusNoted, LeadStatusDemoSent, LeadStatusDemoComplete}

// DemoFile là một file demo đã upload cho lead.
type DemoFile struct {
	URL        string `json:"url" bson:"url"`
	UploadedAt int64  `json:"uploadedAt" bson:"uploadedAt"` // UnixMilli
}

// Lead là khách hàng tiềm năng của agency.
type Lead struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CompanyName  string             `json:"companyName" bson:"companyName" index:"single"`
	ClientName   string             `json:"clientName" bson:"clientName"`
	ClientEmail  string             `json:"clientEmail" bson:"clientEmail,omitempty"`
	ClientPhone  string             `json:"clientPhone" bson:"clientPhone,omitempty"`
	WebsiteURL   string             `json:"websiteUrl" bson:"websiteUrl,omitempty"`
	Location     string             `json:"location" bson:"location,omitempty"`
	BusinessType string             `json:"businessType" bson:"businessType,omitempty"`
	Status       string             `json:"status" bson:"status" index:"single"`
	DemoFiles    []DemoFile         `json:"demoFiles" bson:"demoFiles"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt,omitempty" index:"single,order:-1"` // UnixMilli, server gán
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt,omitempty"`                         // UnixMilli, server gán
}
