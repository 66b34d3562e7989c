package portalmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Trạng thái của Project.
const (
	ProjectStatusActive    = "active"
	ProjectStatusPaused    = "paused"
	ProjectStatusCompleted = "completed"
)

// ProjectStatuses liệt kê các trạng thái hợp lệ của Project.
var ProjectStatuses = []string{ProjectStatusActive, ProjectStatusPaused, ProjectStatusCompleted}

// Tier của Project, theo thứ tự tăng dần dùng cho sắp xếp/ưu tiên.
const (
	TierBasic    = "basic"
	TierStandard = "standard"
	TierPremium  = "premium"
)

// ProjectTiers liệt kê các tier hợp lệ theo thứ tự tăng dần.
var ProjectTiers = []string{TierBasic, TierStandard, TierPremium}

// TierRank trả về hạng của tier để so sánh (tier lạ xếp thấp nhất).
func TierRank(tier string) int {
	for i, t := range ProjectTiers {
		if t == tier {
			return i + 1
		}
	}
	return 0
}

// Trạng thái của Milestone.
const (
	MilestoneStatusPending   = "pending"
	MilestoneStatusCurrent   = "current"
	MilestoneStatusCompleted = "completed"
)

// MilestoneStatuses liệt kê các trạng thái hợp lệ của Milestone.
var MilestoneStatuses = []string{MilestoneStatusPending, MilestoneStatusCurrent, MilestoneStatusCompleted}

// Milestone là một cột mốc trong dự án.
type Milestone struct {
	ID     string `json:"id" bson:"id"` // uuid, client không tự sinh
	Title  string `json:"title" bson:"title"`
	Status string `json:"status" bson:"status"`
	Date   int64  `json:"date" bson:"date"` // UnixMilli
}

// Invoice là một hóa đơn gắn với dự án.
type Invoice struct {
	ID       string  `json:"id" bson:"id"`
	Label    string  `json:"label" bson:"label"`
	Amount   float64 `json:"amount" bson:"amount"`
	URL      string  `json:"url" bson:"url,omitempty"`
	IssuedAt int64   `json:"issuedAt" bson:"issuedAt"`
	Paid     bool    `json:"paid" bson:"paid"`
}

// ClientFile là file do client upload vào dự án.
type ClientFile struct {
	Name       string `json:"name" bson:"name"`
	URL        string `json:"url" bson:"url"`
	UploadedAt int64  `json:"uploadedAt" bson:"uploadedAt"`
	UploadedBy string `json:"uploadedBy" bson:"uploadedBy,omitempty"` // Firebase UID
}

// Project là dự án đang triển khai, superset các trường của Lead.
type Project struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CompanyName  string             `json:"companyName" bson:"companyName" index:"single"`
	ClientName   string             `json:"clientName" bson:"clientName"`
	ClientEmail  string             `json:"clientEmail" bson:"clientEmail,omitempty"`
	ClientPhone  string             `json:"clientPhone" bson:"clientPhone,omitempty"`
	WebsiteURL   string             `json:"websiteUrl" bson:"websiteUrl,omitempty"`
	Location     string             `json:"location" bson:"location,omitempty"`
	BusinessType string             `json:"businessType" bson:"businessType,omitempty"`

	Status          string       `json:"status" bson:"status" index:"single"`
	Tier            string       `json:"tier" bson:"tier" default:"standard"`
	Progress        int          `json:"progress" bson:"progress"` // [0,100], clamp khi ghi
	LogoURL         string       `json:"logoUrl" bson:"logoUrl,omitempty"`
	AssignedClients []string     `json:"assignedClients" bson:"assignedClients" index:"single"` // Firebase UID
	Milestones      []Milestone  `json:"milestones" bson:"milestones"`
	Invoices        []Invoice    `json:"invoices" bson:"invoices"`
	ClientFiles     []ClientFile `json:"clientFiles" bson:"clientFiles"`

	RestoredAt int64 `json:"restoredAt,omitempty" bson:"restoredAt,omitempty"` // UnixMilli, chỉ có khi restore từ archive
	CreatedAt  int64 `json:"createdAt" bson:"createdAt,omitempty" index:"single,order:-1"`
	UpdatedAt  int64 `json:"updatedAt" bson:"updatedAt,omitempty"`
}
