package main

import (
	"context"
	"time"

	authmodels "agency_portal/internal/api/auth/models"
	portalmodels "agency_portal/internal/api/portal/models"
	"agency_portal/internal/database"
	"agency_portal/internal/global"
	"agency_portal/internal/logger"
)

// InitRegistry đăng ký các collection vào registry toàn cục và đảm bảo
// index theo tag `index` của từng model.
func InitRegistry() {
	db := global.MongoDB_Session.Database(global.ServerConfig.MongoDB_DBName)
	global.RegistryDatabase.Register(global.ServerConfig.MongoDB_DBName, db)

	// Tên collection -> model dùng để tạo index
	collections := map[string]interface{}{
		global.ColNames.Leads:    portalmodels.Lead{},
		global.ColNames.Projects: portalmodels.Project{},
		global.ColNames.Tickets:  portalmodels.Ticket{},
		global.ColNames.Messages: portalmodels.Message{},
		global.ColNames.Activity: portalmodels.Activity{},
		global.ColNames.Archived: portalmodels.ArchivedRecord{},
		global.ColNames.Users:    authmodels.User{},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	for name, model := range collections {
		collection := db.Collection(name)
		global.RegistryCollections.Register(name, collection)
		logger.GetAppLogger().Infof("Đã đăng ký collection: %s", name)

		if err := database.CreateIndexes(ctx, collection, model); err != nil {
			logger.GetAppLogger().Fatalf("Không tạo được index cho %s: %v", name, err)
		}
	}
}
