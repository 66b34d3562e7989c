package portalsvc

import (
	"context"
	"fmt"
	"time"

	authmodels "agency_portal/internal/api/auth/models"
	basemodels "agency_portal/internal/api/base/models"
	basesvc "agency_portal/internal/api/base/service"
	portalmodels "agency_portal/internal/api/portal/models"
	"agency_portal/internal/common"
	"agency_portal/internal/global"
	"agency_portal/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityService ghi và đọc nhật ký hoạt động.
type ActivityService struct {
	*basesvc.BaseServiceMongoImpl[portalmodels.Activity]
}

// NewActivityService tạo ActivityService mới.
func NewActivityService() (*ActivityService, error) {
	coll, exist := global.RegistryCollections.Get(global.ColNames.Activity)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.ColNames.Activity, common.ErrNotFound)
	}
	return &ActivityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[portalmodels.Activity](coll),
	}, nil
}

// Append ghi một dòng activity mới.
func (s *ActivityService) Append(ctx context.Context, actor *authmodels.User, activityType, label string, data map[string]interface{}) (*portalmodels.Activity, error) {
	doc := portalmodels.Activity{
		Type:      activityType,
		Label:     label,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
	if actor != nil {
		doc.UserID = actor.UID
	}
	created, err := s.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// LogBestEffort ghi activity nhưng nuốt lỗi: thao tác chính đã thành công
// thì không được fail chỉ vì không ghi được nhật ký.
func (s *ActivityService) LogBestEffort(ctx context.Context, actor *authmodels.User, activityType, label string, data map[string]interface{}) {
	if _, err := s.Append(ctx, actor, activityType, label, data); err != nil {
		logger.GetErrorLogger().Warnf("Không ghi được activity %s: %v", activityType, err)
	}
}

// ListRecent trả về các dòng activity mới nhất trước.
func (s *ActivityService) ListRecent(ctx context.Context, limit int64) ([]portalmodels.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := mongoopts.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)
	return s.Find(ctx, bson.M{}, opts)
}

// ListPage trả về một trang activity kèm thông tin phân trang.
func (s *ActivityService) ListPage(ctx context.Context, page, limit int64) (*basemodels.PaginateResult[portalmodels.Activity], error) {
	if limit <= 0 {
		limit = 50
	}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	return s.FindWithPagination(ctx, bson.M{}, page, limit, opts)
}

// ListByUser trả về activity của một người dùng, mới nhất trước.
func (s *ActivityService) ListByUser(ctx context.Context, uid string, limit int64) ([]portalmodels.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := mongoopts.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)
	return s.Find(ctx, bson.M{"userId": uid}, opts)
}
