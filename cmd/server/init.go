package main

import (
	"agency_portal/config"
	"agency_portal/internal/app"
	"agency_portal/internal/database"
	"agency_portal/internal/global"
	"agency_portal/internal/logger"
	"agency_portal/internal/storage"
	"agency_portal/internal/utility"

	"context"
	"time"
)

// initColNames gán tên cho các collection trong MongoDB.
func initColNames() {
	global.ColNames.Leads = "leads"
	global.ColNames.Projects = "projects"
	global.ColNames.Tickets = "tickets"
	global.ColNames.Messages = "messages"
	global.ColNames.Activity = "activity_log"
	global.ColNames.Archived = "archived_records"
	global.ColNames.Users = "users"
	logger.GetAppLogger().Info("Đã khởi tạo tên các collection")
}

// initValidator khởi tạo validator và đăng ký các rule tuỳ chỉnh.
func initValidator() {
	global.InitValidator()
	logger.GetAppLogger().Info("Đã khởi tạo validator")
}

// initConfig đọc cấu hình từ file env theo GO_ENV.
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logger.GetAppLogger().Fatal("Không đọc được cấu hình server")
	}
	logger.GetAppLogger().Info("Đã khởi tạo cấu hình server")
}

// initDatabase kết nối MongoDB và đảm bảo database cùng các collection tồn tại.
func initDatabase() {
	client, err := database.GetInstance(global.ServerConfig)
	if err != nil {
		logger.GetAppLogger().Fatalf("Không kết nối được MongoDB: %v", err)
	}
	global.MongoDB_Session = client

	if err := database.EnsureDatabaseAndCollections(client); err != nil {
		logger.GetAppLogger().Fatalf("Không đảm bảo được database và collections: %v", err)
	}
}

// initFirebase khởi tạo Firebase App và Auth client.
func initFirebase() {
	cfg := global.ServerConfig
	if err := utility.InitFirebase(cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath); err != nil {
		logger.GetAppLogger().Fatalf("Không khởi tạo được Firebase: %v", err)
	}
	logger.GetAppLogger().Info("Đã khởi tạo Firebase")
}

// InitGlobal khởi tạo các thành phần toàn cục theo đúng thứ tự phụ thuộc.
func InitGlobal() {
	initColNames()
	initValidator()
	initConfig()
	initDatabase()
	initFirebase()
}

// InitAppContext dựng storage client và app context chứa toàn bộ service.
func InitAppContext() *app.App {
	cfg := global.ServerConfig

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	storageClient, err := storage.NewClient(ctx, utility.GetFirebaseApp(), cfg.FirebaseStorageBucket)
	if err != nil {
		logger.GetAppLogger().Fatalf("Không khởi tạo được Firebase Storage: %v", err)
	}

	application, err := app.New(cfg, utility.GetFirebaseAuth(), storageClient)
	if err != nil {
		logger.GetAppLogger().Fatalf("Không dựng được app context: %v", err)
	}
	logger.GetAppLogger().Info("Đã dựng app context")
	return application
}
