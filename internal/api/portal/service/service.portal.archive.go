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
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// ArchiveService xóa mềm lead/project vào collection lưu trữ và khôi phục lại.
// Archive giữ snapshot đầy đủ trong originalData, kèm vài trường nhận diện
// denormalize để hiển thị danh sách.
type ArchiveService struct {
	*basesvc.BaseServiceMongoImpl[portalmodels.ArchivedRecord]
	leads    *LeadService
	projects *ProjectService
	activity *ActivityService
	notifier *notify.Notifier
}

// NewArchiveService tạo ArchiveService mới.
func NewArchiveService(leads *LeadService, projects *ProjectService, activity *ActivityService, notifier *notify.Notifier) (*ArchiveService, error) {
	coll, exist := global.RegistryCollections.Get(global.ColNames.Archived)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.ColNames.Archived, common.ErrNotFound)
	}
	return &ArchiveService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[portalmodels.ArchivedRecord](coll),
		leads:                leads,
		projects:             projects,
		activity:             activity,
		notifier:             notifier,
	}, nil
}

// ArchiveLead chuyển lead vào collection lưu trữ rồi xóa bản gốc.
// Hai bước ghi không nằm trong transaction.
func (s *ArchiveService) ArchiveLead(ctx context.Context, actor *authmodels.User, leadID string) (*portalmodels.ArchivedRecord, error) {
	var archived portalmodels.ArchivedRecord
	err := runCommand(s.notifier, "Đang lưu trữ lead...", "Đã lưu trữ lead", func() error {
		oid, err := parseObjectID(leadID)
		if err != nil {
			return err
		}
		lead, err := s.leads.FindOneById(ctx, oid)
		if err != nil {
			return err
		}

		originalData, err := utility.ToMap(lead)
		if err != nil {
			return common.ErrInvalidFormat
		}

		doc := portalmodels.ArchivedRecord{
			OriginalType: portalmodels.ArchivedTypeLead,
			OriginalID:   lead.ID.Hex(),
			CompanyName:  lead.CompanyName,
			ClientName:   lead.ClientName,
			ClientEmail:  lead.ClientEmail,
			OriginalData: originalData,
			ArchivedAt:   time.Now().UnixMilli(),
		}
		if actor != nil {
			doc.ArchivedBy = actor.UID
		}

		out, err := s.InsertOne(ctx, doc)
		if err != nil {
			return err
		}
		archived = out

		if err := s.leads.DeleteById(ctx, oid); err != nil {
			return err
		}

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityRecordArchived,
			"Lưu trữ lead "+lead.CompanyName,
			map[string]interface{}{"leadId": leadID, "archivedId": archived.ID.Hex()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &archived, nil
}

// ArchiveProject chuyển project vào collection lưu trữ rồi xóa bản gốc.
func (s *ArchiveService) ArchiveProject(ctx context.Context, actor *authmodels.User, projectID string) (*portalmodels.ArchivedRecord, error) {
	var archived portalmodels.ArchivedRecord
	err := runCommand(s.notifier, "Đang lưu trữ dự án...", "Đã lưu trữ dự án", func() error {
		oid, err := parseObjectID(projectID)
		if err != nil {
			return err
		}
		project, err := s.projects.FindOneById(ctx, oid)
		if err != nil {
			return err
		}

		originalData, err := utility.ToMap(project)
		if err != nil {
			return common.ErrInvalidFormat
		}

		doc := portalmodels.ArchivedRecord{
			OriginalType: portalmodels.ArchivedTypeProject,
			OriginalID:   project.ID.Hex(),
			CompanyName:  project.CompanyName,
			ClientName:   project.ClientName,
			ClientEmail:  project.ClientEmail,
			OriginalData: originalData,
			ArchivedAt:   time.Now().UnixMilli(),
		}
		if actor != nil {
			doc.ArchivedBy = actor.UID
		}

		out, err := s.InsertOne(ctx, doc)
		if err != nil {
			return err
		}
		archived = out

		if err := s.projects.DeleteById(ctx, oid); err != nil {
			return err
		}

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityRecordArchived,
			"Lưu trữ dự án "+project.CompanyName,
			map[string]interface{}{"projectId": projectID, "archivedId": archived.ID.Hex()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &archived, nil
}

// Restore khôi phục bản ghi từ collection lưu trữ về collection gốc,
// đóng dấu restoredAt/updatedAt rồi xóa bản ghi lưu trữ.
func (s *ArchiveService) Restore(ctx context.Context, actor *authmodels.User, archivedID string) error {
	return runCommand(s.notifier, "Đang khôi phục...", "Đã khôi phục bản ghi", func() error {
		oid, err := parseObjectID(archivedID)
		if err != nil {
			return err
		}
		record, err := s.FindOneById(ctx, oid)
		if err != nil {
			return err
		}

		data := buildRestoreDocument(&record, time.Now().UnixMilli())

		var targetCol string
		switch record.OriginalType {
		case portalmodels.ArchivedTypeLead:
			targetCol = global.ColNames.Leads
		case portalmodels.ArchivedTypeProject:
			targetCol = global.ColNames.Projects
		default:
			return common.ErrInvalidState
		}

		coll, exist := global.RegistryCollections.Get(targetCol)
		if !exist {
			return common.ErrNotFound
		}
		if _, err := coll.InsertOne(ctx, data); err != nil {
			return common.ConvertMongoError(err)
		}

		if err := s.DeleteById(ctx, oid); err != nil {
			return err
		}

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityRecordRestored,
			"Khôi phục "+record.OriginalType+" "+record.CompanyName,
			map[string]interface{}{"archivedId": archivedID, "originalId": record.OriginalID})
		return nil
	})
}

// buildRestoreDocument dựng lại document gốc từ snapshot lưu trữ:
// copy nguyên originalData, đóng dấu restoredAt/updatedAt mới.
func buildRestoreDocument(record *portalmodels.ArchivedRecord, now int64) map[string]interface{} {
	data := make(map[string]interface{}, len(record.OriginalData)+2)
	for k, v := range record.OriginalData {
		data[k] = v
	}
	// Giữ nguyên _id gốc để các tham chiếu cũ (ticket, message) còn khớp
	if originalOID, err := parseObjectID(record.OriginalID); err == nil {
		data["_id"] = originalOID
	}
	data["restoredAt"] = now
	data["updatedAt"] = now
	return data
}

// ListArchived trả về các bản ghi lưu trữ, mới lưu trước.
func (s *ArchiveService) ListArchived(ctx context.Context, query *portaldto.ListArchivedQuery) ([]portalmodels.ArchivedRecord, error) {
	if err := global.ValidateStruct(query); err != nil {
		return nil, err
	}

	filter := bson.M{}
	if query.OriginalType != "" {
		filter["originalType"] = query.OriginalType
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}
	opts := mongoopts.Find().
		SetSort(bson.D{{Key: "archivedAt", Value: -1}}).
		SetLimit(limit)
	return s.Find(ctx, filter, opts)
}
