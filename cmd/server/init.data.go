package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	authmodels "agency_portal/internal/api/auth/models"
	"agency_portal/internal/global"
	"agency_portal/internal/logger"
)

// InitDefaultData đảm bảo hồ sơ admin tồn tại nếu FIREBASE_ADMIN_UID được
// cấu hình. Không ghi đè hồ sơ đã có, chỉ nâng role lên admin.
func InitDefaultData(ctx context.Context) {
	adminUID := global.ServerConfig.FirebaseAdminUID
	if adminUID == "" {
		logger.GetAppLogger().Info("FIREBASE_ADMIN_UID chưa cấu hình, bỏ qua tạo hồ sơ admin")
		return
	}

	collection, ok := global.RegistryCollections.Get(global.ColNames.Users)
	if !ok {
		logger.GetAppLogger().Fatal("Collection users chưa được đăng ký")
	}

	now := time.Now().UnixMilli()
	update := bson.M{
		"$set": bson.M{
			"role":      authmodels.RoleAdmin,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"uid":         adminUID,
			"displayName": "Administrator",
			"createdAt":   now,
		},
	}

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := collection.UpdateOne(opCtx, bson.M{"uid": adminUID}, update, options.Update().SetUpsert(true))
	if err != nil {
		logger.GetAppLogger().Fatalf("Không tạo được hồ sơ admin mặc định: %v", err)
	}
	logger.GetAppLogger().Infof("Đã đảm bảo hồ sơ admin cho UID %s", adminUID)
}
