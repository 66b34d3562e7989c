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

// ProjectBatchSize là số projectId tối đa trong một truy vấn $in khi gom
// ticket theo danh sách dự án.
const ProjectBatchSize = 10

// TicketService xử lý ticket hỗ trợ của client.
type TicketService struct {
	*basesvc.BaseServiceMongoImpl[portalmodels.Ticket]
	activity *ActivityService
	notifier *notify.Notifier
}

// NewTicketService tạo TicketService mới.
func NewTicketService(activity *ActivityService, notifier *notify.Notifier) (*TicketService, error) {
	coll, exist := global.RegistryCollections.Get(global.ColNames.Tickets)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.ColNames.Tickets, common.ErrNotFound)
	}
	return &TicketService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[portalmodels.Ticket](coll),
		activity:             activity,
		notifier:             notifier,
	}, nil
}

// CreateTicket tạo ticket mới. ClientID luôn là UID của actor:
// kiểm tra cục bộ trước khi ghi, không chờ database từ chối.
func (s *TicketService) CreateTicket(ctx context.Context, actor *authmodels.User, input *portaldto.CreateTicketInput) (*portalmodels.Ticket, error) {
	var created portalmodels.Ticket
	err := runCommand(s.notifier, "Đang gửi ticket...", "Đã gửi ticket", func() error {
		if actor == nil || actor.UID == "" {
			return common.ErrPermissionDenied
		}
		if err := global.ValidateStruct(input); err != nil {
			return err
		}

		now := time.Now().UnixMilli()
		doc := portalmodels.Ticket{
			Title:       utility.SanitizeText(input.Title),
			Description: utility.SanitizeRichText(input.Description),
			ProjectID:   input.ProjectID,
			ClientID:    actor.UID,
			Status:      portalmodels.TicketStatusOpen,
			Urgency:     input.Urgency,
			SubmittedAt: now,
		}

		out, err := s.InsertOne(ctx, doc)
		if err != nil {
			return err
		}
		created = out

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityTicketCreated,
			"Gửi ticket "+created.Title,
			map[string]interface{}{"ticketId": created.ID.Hex(), "urgency": created.Urgency})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTicket cập nhật ticket. Client chỉ được sửa ticket của chính mình,
// nhân sự nội bộ sửa được mọi ticket.
func (s *TicketService) UpdateTicket(ctx context.Context, actor *authmodels.User, ticketID string, input *portaldto.UpdateTicketInput) (*portalmodels.Ticket, error) {
	var updated portalmodels.Ticket
	err := runCommand(s.notifier, "Đang cập nhật ticket...", "Đã cập nhật ticket", func() error {
		if actor == nil || actor.UID == "" {
			return common.ErrPermissionDenied
		}
		if err := global.ValidateStruct(input); err != nil {
			return err
		}
		oid, err := parseObjectID(ticketID)
		if err != nil {
			return err
		}

		existing, err := s.FindOneById(ctx, oid)
		if err != nil {
			return err
		}
		if !authmodels.IsStaffRole(actor.Role) && !ticketOwnedBy(&existing, actor.UID) {
			return common.ErrPermissionDenied
		}

		set := map[string]interface{}{}
		if input.Title != "" {
			set["title"] = utility.SanitizeText(input.Title)
		}
		if input.Description != "" {
			set["description"] = utility.SanitizeRichText(input.Description)
		}
		putIfSet(set, "status", input.Status)
		putIfSet(set, "urgency", input.Urgency)
		if len(set) == 0 {
			return common.ErrInvalidInput
		}

		out, err := s.UpdateById(ctx, oid, &basesvc.UpdateData{Set: set})
		if err != nil {
			return err
		}
		updated = out

		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityTicketUpdated,
			"Cập nhật ticket "+updated.Title,
			map[string]interface{}{"ticketId": ticketID, "status": updated.Status})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTicket xóa ticket. Chỉ nhân sự nội bộ được xóa.
func (s *TicketService) DeleteTicket(ctx context.Context, actor *authmodels.User, ticketID string) error {
	return runCommand(s.notifier, "Đang xóa ticket...", "Đã xóa ticket", func() error {
		if actor == nil || !authmodels.IsStaffRole(actor.Role) {
			return common.ErrPermissionDenied
		}
		oid, err := parseObjectID(ticketID)
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
		s.activity.LogBestEffort(ctx, actor, portalmodels.ActivityTicketDeleted,
			"Xóa ticket "+existing.Title,
			map[string]interface{}{"ticketId": ticketID})
		return nil
	})
}

// ticketOwnedBy kiểm tra ticket thuộc về uid, tính cả trường cũ submittedById.
func ticketOwnedBy(t *portalmodels.Ticket, uid string) bool {
	return t.ClientID == uid || (t.ClientID == "" && t.SubmittedByID == uid)
}

// ListAll trả về mọi ticket, mới nhất trước.
func (s *TicketService) ListAll(ctx context.Context) ([]portalmodels.Ticket, error) {
	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, bson.M{}, opts)
}

// FindByClientID trả về ticket có clientId khớp uid.
func (s *TicketService) FindByClientID(ctx context.Context, uid string) ([]portalmodels.Ticket, error) {
	return s.Find(ctx, bson.M{"clientId": uid}, nil)
}

// FindByLegacySubmitter trả về ticket lịch sử chỉ có submittedById.
func (s *TicketService) FindByLegacySubmitter(ctx context.Context, uid string) ([]portalmodels.Ticket, error) {
	filter := bson.M{
		"submittedById": uid,
		"clientId":      bson.M{"$exists": false},
	}
	return s.Find(ctx, filter, nil)
}

// FindByProjectIDs gom ticket theo danh sách projectId, chia batch $in
// tối đa ProjectBatchSize phần tử mỗi truy vấn.
func (s *TicketService) FindByProjectIDs(ctx context.Context, projectIDs []string) ([]portalmodels.Ticket, error) {
	results := []portalmodels.Ticket{}
	for start := 0; start < len(projectIDs); start += ProjectBatchSize {
		end := start + ProjectBatchSize
		if end > len(projectIDs) {
			end = len(projectIDs)
		}
		batch, err := s.Find(ctx, bson.M{"projectId": bson.M{"$in": projectIDs[start:end]}}, nil)
		if err != nil {
			return nil, err
		}
		results = append(results, batch...)
	}
	return results, nil
}
