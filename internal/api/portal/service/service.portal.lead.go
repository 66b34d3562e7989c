package portalsvc

import (
	"context"
	"fmt"
	"time"

	authmodels "agency_portal/internal/api/auth/models"
	basesvc "agency_portal/internal/api/base/service"
	portaldto "agency_portal/internal/api/portal/dto"
	portalmodels "agency_portal/internal/api/portal/models"
	"agency_portal/internal/common"
	"agency_portal/internal/global"
	"agency_portal/internal/notify"
	"agency_portal/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// LeadService xử lý CRUD lead và chuyển đổi lead thành project.
type LeadService struct {
	*basesvc.BaseServiceMongoImpl[portalmodels.Lead]
	projects *ProjectService
	activity *ActivityService
	notifier *notify.Notifier
}

// NewLeadService tạo LeadService mới.
func NewLeadService(projects *ProjectService, activity *ActivityService, notifier *notify.Notifier) (*LeadService, error) {
	coll, exist := global.RegistryCollections.Get(global.ColNames.Leads)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.ColNames.Leads, common.ErrNotFound)
	}
	return &LeadService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[portalmodels.Lead](coll),
		projects:             projects,
		activity:             activity,
		notifier:             notifier,
	}, nil
}

// CreateLead tạo lead mới. Status phải truyền tường minh trong input.
func (s *LeadService) CreateLead(ctx context.Context, actor *authmodels.User, input *portaldto.CreateLeadInput) (*portalmodels.Lead, error) {
	var created portalmodels.Lead
	err := runCommand(s.notifier, "Đang tạo lead...", "Đã tạo lead", func() error {
		if err := global.ValidateStruct(input); err != nil {
			return err
		}

		doc := portalmodels.Lead{
			CompanyName:  utility.SanitizeText(input.CompanyName),
			ClientName:   utility.SanitizeText(input.ClientName),
			ClientEmail:  utility.SanitizeText(input.ClientEmail),
			ClientPhone:  utility.SanitizeText(input.ClientPhone),
			WebsiteURL:   utility.SanitizeText(input.WebsiteURL),
			Location:     utility.SanitizeText(input.Location),
			BusinessType: utility.SanitizeText(input.BusinessType),
			Status:       input.Status,
			DemoFiles:    []portalmodels.DemoFile{},
		}

		out, err := s.InsertOne(ctx, doc)
		if err != nil {
			return err
		}
		created = out

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityLeadCreated,
			"Tạo lead "+created.CompanyName,
			map[string]interface{}{"leadId": created.ID.Hex(), "companyName": created.CompanyName})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateLead cập nhật các field khác rỗng của lead.
func (s *LeadService) UpdateLead(ctx context.Context, actor *authmodels.User, leadID string, input *portaldto.UpdateLeadInput) (*portalmodels.Lead, error) {
	var updated portalmodels.Lead
	err := runCommand(s.notifier, "Đang cập nhật lead...", "Đã cập nhật lead", func() error {
		if err := global.ValidateStruct(input); err != nil {
			return err
		}
		oid, err := parseObjectID(leadID)
		if err != nil {
			return err
		}

		set := map[string]interface{}{}
		putIfSet(set, "companyName", utility.SanitizeText(input.CompanyName))
		putIfSet(set, "clientName", utility.SanitizeText(input.ClientName))
		putIfSet(set, "clientEmail", utility.SanitizeText(input.ClientEmail))
		putIfSet(set, "clientPhone", utility.SanitizeText(input.ClientPhone))
		putIfSet(set, "websiteUrl", utility.SanitizeText(input.WebsiteURL))
		putIfSet(set, "location", utility.SanitizeText(input.Location))
		putIfSet(set, "businessType", utility.SanitizeText(input.BusinessType))
		putIfSet(set, "status", input.Status)
		if len(set) == 0 {
			return common.ErrInvalidInput
		}

		out, err := s.UpdateById(ctx, oid, &basesvc.UpdateData{Set: set})
		if err != nil {
			return err
		}
		updated = out

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityLeadUpdated,
			"Cập nhật lead "+updated.CompanyName,
			map[string]interface{}{"leadId": updated.ID.Hex()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteLead xóa lead theo ID.
func (s *LeadService) DeleteLead(ctx context.Context, actor *authmodels.User, leadID string) error {
	return runCommand(s.notifier, "Đang xóa lead...", "Đã xóa lead", func() error {
		oid, err := parseObjectID(leadID)
		if err != nil {
			return err
		}
		existing, err := s.FindOneById(ctx, oid)
		if err != nil {
			return err
		}
		if err := s.DeleteById(ctx, oid); err != nil {
			return err
		}
		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityLeadDeleted,
			"Xóa lead "+existing.CompanyName,
			map[string]interface{}{"leadId": leadID, "companyName": existing.CompanyName})
		return nil
	})
}

// AddDemoFile gắn URL file demo đã upload vào lead.
func (s *LeadService) AddDemoFile(ctx context.Context, actor *authmodels.User, leadID string, input *portaldto.AddDemoFileInput) (*portalmodels.Lead, error) {
	var updated portalmodels.Lead
	err := runCommand(s.notifier, "Đang lưu file demo...", "Đã lưu file demo", func() error {
		if err := global.ValidateStruct(input); err != nil {
			return err
		}
		oid, err := parseObjectID(leadID)
		if err != nil {
			return err
		}

		demoFile := portalmodels.DemoFile{
			URL:        input.URL,
			UploadedAt: time.Now().UnixMilli(),
		}
		out, err := s.UpdateById(ctx, oid, &basesvc.UpdateData{
			Push: map[string]interface{}{"demoFiles": demoFile},
		})
		if err != nil {
			return err
		}
		updated = out

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityFileUploaded,
			"Upload file demo cho lead "+updated.CompanyName,
			map[string]interface{}{"leadId": leadID, "url": input.URL})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ConvertToProject chuyển lead thành project đang hoạt động rồi xóa lead.
// Hai bước ghi không nằm trong transaction: nếu xóa lead thất bại sau khi
// project đã tạo thì lead vẫn còn và cần dọn tay.
func (s *LeadService) ConvertToProject(ctx context.Context, actor *authmodels.User, leadID string) (*portalmodels.Project, error) {
	var created portalmodels.Project
	err := runCommand(s.notifier, "Đang chuyển lead thành dự án...", "Đã tạo dự án từ lead", func() error {
		oid, err := parseObjectID(leadID)
		if err != nil {
			return err
		}
		lead, err := s.FindOneById(ctx, oid)
		if err != nil {
			return err
		}

		doc := portalmodels.Project{
			CompanyName:  lead.CompanyName,
			ClientName:   lead.ClientName,
			ClientEmail:  lead.ClientEmail,
			ClientPhone:  lead.ClientPhone,
			WebsiteURL:   lead.WebsiteURL,
			Location:     lead.Location,
			BusinessType: lead.BusinessType,
			Status:       portalmodels.ProjectStatusActive,
			Milestones: []portalmodels.Milestone{
				{
					ID:     primitive.NewObjectID().Hex(),
					Title:  "Kickoff",
					Status: portalmodels.MilestoneStatusPending,
					Date:   time.Now().UnixMilli(),
				},
			},
			AssignedClients: []string{},
			Invoices:        []portalmodels.Invoice{},
			ClientFiles:     []portalmodels.ClientFile{},
		}

		out, err := s.projects.InsertOne(ctx, doc)
		if err != nil {
			return err
		}
		created = out

		if err := s.DeleteById(ctx, oid); err != nil {
			return err
		}

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityLeadConverted,
			"Chuyển lead "+lead.CompanyName+" thành dự án",
			map[string]interface{}{
				"leadId":      leadID,
				"projectId":   created.ID.Hex(),
				"companyName": lead.CompanyName,
			})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListLeads trả về danh sách lead, mới nhất trước.
func (s *LeadService) ListLeads(ctx context.Context, status string) ([]portalmodels.Lead, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, filter, opts)
}

// putIfSet thêm giá trị vào map $set nếu khác rỗng.
func putIfSet(set map[string]interface{}, key, value string) {
	if value != "" {
		set[key] = value
	}
}
