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

// ProjectService xử lý CRUD project, milestone, gán client và file của dự án.
type ProjectService struct {
	*basesvc.BaseServiceMongoImpl[portalmodels.Project]
	activity *ActivityService
	notifier *notify.Notifier
}

// NewProjectService tạo ProjectService mới.
func NewProjectService(activity *ActivityService, notifier *notify.Notifier) (*ProjectService, error) {
	coll, exist := global.RegistryCollections.Get(global.ColNames.Projects)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.ColNames.Projects, common.ErrNotFound)
	}
	return &ProjectService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[portalmodels.Project](coll),
		activity:             activity,
		notifier:             notifier,
	}, nil
}

// ClampProgress đưa progress về khoảng [0,100].
func ClampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// CreateProject tạo project mới. Tier để trống sẽ nhận default "standard".
func (s *ProjectService) CreateProject(ctx context.Context, actor *authmodels.User, input *portaldto.CreateProjectInput) (*portalmodels.Project, error) {
	var created portalmodels.Project
	err := runCommand(s.notifier, "Đang tạo dự án...", "Đã tạo dự án", func() error {
		if err := global.ValidateStruct(input); err != nil {
			return err
		}

		status := input.Status
		if status == "" {
			status = portalmodels.ProjectStatusActive
		}

		doc := portalmodels.Project{
			CompanyName:     utility.SanitizeText(input.CompanyName),
			ClientName:      utility.SanitizeText(input.ClientName),
			ClientEmail:     utility.SanitizeText(input.ClientEmail),
			ClientPhone:     utility.SanitizeText(input.ClientPhone),
			WebsiteURL:      utility.SanitizeText(input.WebsiteURL),
			Location:        utility.SanitizeText(input.Location),
			BusinessType:    utility.SanitizeText(input.BusinessType),
			Status:          status,
			Tier:            input.Tier,
			Progress:        ClampProgress(input.Progress),
			AssignedClients: []string{},
			Milestones:      []portalmodels.Milestone{},
			Invoices:        []portalmodels.Invoice{},
			ClientFiles:     []portalmodels.ClientFile{},
		}

		out, err := s.InsertOne(ctx, doc)
		if err != nil {
			return err
		}
		created = out

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityProjectCreated,
			"Tạo dự án "+created.CompanyName,
			map[string]interface{}{"projectId": created.ID.Hex(), "companyName": created.CompanyName})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject cập nhật các field khác rỗng của project.
func (s *ProjectService) UpdateProject(ctx context.Context, actor *authmodels.User, projectID string, input *portaldto.UpdateProjectInput) (*portalmodels.Project, error) {
	var updated portalmodels.Project
	err := runCommand(s.notifier, "Đang cập nhật dự án...", "Đã cập nhật dự án", func() error {
		if err := global.ValidateStruct(input); err != nil {
			return err
		}
		oid, err := parseObjectID(projectID)
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
		putIfSet(set, "tier", input.Tier)
		if input.Progress != nil {
			set["progress"] = ClampProgress(*input.Progress)
		}
		if len(set) == 0 {
			return common.ErrInvalidInput
		}

		out, err := s.UpdateById(ctx, oid, &basesvc.UpdateData{Set: set})
		if err != nil {
			return err
		}
		updated = out

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityProjectUpdated,
			"Cập nhật dự án "+updated.CompanyName,
			map[string]interface{}{"projectId": updated.ID.Hex()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject xóa project theo ID.
func (s *ProjectService) DeleteProject(ctx context.Context, actor *authmodels.User, projectID string) error {
	return runCommand(s.notifier, "Đang xóa dự án...", "Đã xóa dự án", func() error {
		oid, err := parseObjectID(projectID)
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
		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityProjectDeleted,
			"Xóa dự án "+existing.CompanyName,
			map[string]interface{}{"projectId": projectID, "companyName": existing.CompanyName})
		return nil
	})
}

// AddMilestone thêm cột mốc mới vào project. ID cột mốc do server sinh.
func (s *ProjectService) AddMilestone(ctx context.Context, actor *authmodels.User, projectID string, input *portaldto.AddMilestoneInput) (*portalmodels.Project, error) {
	var updated portalmodels.Project
	err := runCommand(s.notifier, "Đang thêm cột mốc...", "Đã thêm cột mốc", func() error {
		if err := global.ValidateStruct(input); err != nil {
			return err
		}
		oid, err := parseObjectID(projectID)
		if err != nil {
			return err
		}

		status := input.Status
		if status == "" {
			status = portalmodels.MilestoneStatusPending
		}
		date := input.Date
		if date <= 0 {
			date = time.Now().UnixMilli()
		}
		milestone := portalmodels.Milestone{
			ID:     primitive.NewObjectID().Hex(),
			Title:  utility.SanitizeText(input.Title),
			Status: status,
			Date:   date,
		}

		out, err := s.UpdateById(ctx, oid, &basesvc.UpdateData{
			Push: map[string]interface{}{"milestones": milestone},
		})
		if err != nil {
			return err
		}
		updated = out

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityMilestoneUpdated,
			"Thêm cột mốc "+milestone.Title+" vào dự án "+updated.CompanyName,
			map[string]interface{}{"projectId": projectID, "milestoneId": milestone.ID})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateMilestone cập nhật một cột mốc theo ID bằng positional operator.
func (s *ProjectService) UpdateMilestone(ctx context.Context, actor *authmodels.User, projectID string, input *portaldto.UpdateMilestoneInput) (*portalmodels.Project, error) {
	var updated portalmodels.Project
	err := runCommand(s.notifier, "Đang cập nhật cột mốc...", "Đã cập nhật cột mốc", func() error {
		if err := global.ValidateStruct(input); err != nil {
			return err
		}
		oid, err := parseObjectID(projectID)
		if err != nil {
			return err
		}

		set := map[string]interface{}{}
		if input.Title != "" {
			set["milestones.$.title"] = utility.SanitizeText(input.Title)
		}
		if input.Status != "" {
			set["milestones.$.status"] = input.Status
		}
		if input.Date > 0 {
			set["milestones.$.date"] = input.Date
		}
		if len(set) == 0 {
			return common.ErrInvalidInput
		}

		filter := bson.M{"_id": oid, "milestones.id": input.MilestoneID}
		out, err := s.UpdateOne(ctx, filter, &basesvc.UpdateData{Set: set}, nil)
		if err != nil {
			return err
		}
		updated = out

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityMilestoneUpdated,
			"Cập nhật cột mốc trong dự án "+updated.CompanyName,
			map[string]interface{}{"projectId": projectID, "milestoneId": input.MilestoneID})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AssignClients thay toàn bộ danh sách client được gán vào project.
func (s *ProjectService) AssignClients(ctx context.Context, actor *authmodels.User, projectID string, input *portaldto.AssignClientsInput) (*portalmodels.Project, error) {
	var updated portalmodels.Project
	err := runCommand(s.notifier, "Đang gán client...", "Đã gán client vào dự án", func() error {
		if err := global.ValidateStruct(input); err != nil {
			return err
		}
		oid, err := parseObjectID(projectID)
		if err != nil {
			return err
		}

		out, err := s.UpdateById(ctx, oid, &basesvc.UpdateData{
			Set: map[string]interface{}{"assignedClients": input.ClientUIDs},
		})
		if err != nil {
			return err
		}
		updated = out

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityProjectUpdated,
			"Gán client vào dự án "+updated.CompanyName,
			map[string]interface{}{"projectId": projectID, "clientUids": input.ClientUIDs})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AddClientFile gắn file client đã upload vào project.
func (s *ProjectService) AddClientFile(ctx context.Context, actor *authmodels.User, projectID string, input *portaldto.AddClientFileInput) (*portalmodels.Project, error) {
	var updated portalmodels.Project
	err := runCommand(s.notifier, "Đang lưu file...", "Đã lưu file", func() error {
		if err := global.ValidateStruct(input); err != nil {
			return err
		}
		oid, err := parseObjectID(projectID)
		if err != nil {
			return err
		}

		clientFile := portalmodels.ClientFile{
			Name:       utility.SanitizeText(input.Name),
			URL:        input.URL,
			UploadedAt: time.Now().UnixMilli(),
		}
		if actor != nil {
			clientFile.UploadedBy = actor.UID
		}

		out, err := s.UpdateById(ctx, oid, &basesvc.UpdateData{
			Push: map[string]interface{}{"clientFiles": clientFile},
		})
		if err != nil {
			return err
		}
		updated = out

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityFileUploaded,
			"Upload file "+clientFile.Name+" vào dự án "+updated.CompanyName,
			map[string]interface{}{"projectId": projectID, "fileName": clientFile.Name})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AddInvoice thêm hóa đơn vào project.
func (s *ProjectService) AddInvoice(ctx context.Context, actor *authmodels.User, projectID string, input *portaldto.AddInvoiceInput) (*portalmodels.Project, error) {
	var updated portalmodels.Project
	err := runCommand(s.notifier, "Đang thêm hóa đơn...", "Đã thêm hóa đơn", func() error {
		if err := global.ValidateStruct(input); err != nil {
			return err
		}
		oid, err := parseObjectID(projectID)
		if err != nil {
			return err
		}

		issuedAt := input.IssuedAt
		if issuedAt <= 0 {
			issuedAt = time.Now().UnixMilli()
		}
		invoice := portalmodels.Invoice{
			ID:       primitive.NewObjectID().Hex(),
			Label:    utility.SanitizeText(input.Label),
			Amount:   input.Amount,
			URL:      input.URL,
			IssuedAt: issuedAt,
		}

		out, err := s.UpdateById(ctx, oid, &basesvc.UpdateData{
			Push: map[string]interface{}{"invoices": invoice},
		})
		if err != nil {
			return err
		}
		updated = out

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityProjectUpdated,
			"Thêm hóa đơn "+invoice.Label+" vào dự án "+updated.CompanyName,
			map[string]interface{}{"projectId": projectID, "invoiceId": invoice.ID})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetLogo cập nhật URL logo sau khi upload xong.
func (s *ProjectService) SetLogo(ctx context.Context, actor *authmodels.User, projectID, logoURL string) (*portalmodels.Project, error) {
	var updated portalmodels.Project
	err := runCommand(s.notifier, "Đang cập nhật logo...", "Đã cập nhật logo", func() error {
		oid, err := parseObjectID(projectID)
		if err != nil {
			return err
		}
		out, err := s.UpdateById(ctx, oid, &basesvc.UpdateData{
			Set: map[string]interface{}{"logoUrl": logoURL},
		})
		if err != nil {
			return err
		}
		updated = out

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityFileUploaded,
			"Cập nhật logo dự án "+updated.CompanyName,
			map[string]interface{}{"projectId": projectID, "logoUrl": logoURL})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListProjects trả về danh sách project, mới nhất trước.
func (s *ProjectService) ListProjects(ctx context.Context, status string) ([]portalmodels.Project, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, filter, opts)
}

// ListProjectsForClient trả về các project có client được gán.
func (s *ProjectService) ListProjectsForClient(ctx context.Context, clientUID string) ([]portalmodels.Project, error) {
	filter := bson.M{"assignedClients": clientUID}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, filter, opts)
}
