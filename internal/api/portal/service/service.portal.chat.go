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
	"agency_portal/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// ChatService xử lý tin nhắn trong phòng chat của từng dự án.
type ChatService struct {
	*basesvc.BaseServiceMongoImpl[portalmodels.Message]
}

// NewChatService tạo ChatService mới.
func NewChatService() (*ChatService, error) {
	coll, exist := global.RegistryCollections.Get(global.ColNames.Messages)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.ColNames.Messages, common.ErrNotFound)
	}
	return &ChatService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[portalmodels.Message](coll),
	}, nil
}

// SendMessage lưu tin nhắn mới. Timestamp hiển thị do server gán;
// clientTimestamp được giữ lại làm fallback hiển thị tạm.
// Gửi tin không có toast: chat đã phản hồi trực tiếp trong UI.
func (s *ChatService) SendMessage(ctx context.Context, actor *authmodels.User, input *portaldto.SendMessageInput) (*portalmodels.Message, error) {
	if actor == nil || actor.UID == "" {
		return nil, common.ErrPermissionDenied
	}
	if err := global.ValidateStruct(input); err != nil {
		return nil, err
	}

	doc := portalmodels.Message{
		ProjectID:       input.ProjectID,
		SenderID:        actor.UID,
		SenderName:      actor.DisplayName,
		Text:            utility.SanitizeText(input.Text),
		Timestamp:       time.Now().UnixMilli(),
		ClientTimestamp: input.ClientTimestamp,
	}

	created, err := s.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListMessages trả về tin nhắn của một dự án theo thứ tự thời gian tăng dần.
// before > 0 chỉ lấy tin trước mốc đó (phân trang lùi).
func (s *ChatService) ListMessages(ctx context.Context, query *portaldto.ListMessagesQuery) ([]portalmodels.Message, error) {
	if err := global.ValidateStruct(query); err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 100
	}

	filter := bson.M{"projectId": query.ProjectID}
	if query.Before > 0 {
		filter["timestamp"] = bson.M{"$lt": query.Before}
	}

	// Lấy limit tin mới nhất rồi đảo lại cho đúng thứ tự hiển thị
	opts := mongoopts.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)
	messages, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
