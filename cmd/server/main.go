package main

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"agency_portal/internal/api/router"
	"agency_portal/internal/global"
	"agency_portal/internal/logger"
)

// initLogger khởi tạo logger cho toàn bộ ứng dụng.
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Không khởi tạo được logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger đã sẵn sàng")
}

func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục (config, validator, MongoDB, Firebase)
	InitGlobal()

	// Đăng ký collections và đảm bảo index
	InitRegistry()

	// Dữ liệu mặc định (hồ sơ admin)
	InitDefaultData(context.Background())

	// Dựng app context và Fiber server
	application := InitAppContext()
	fiberApp := InitFiberApp()
	router.RegisterAllRoutes(fiberApp, application)

	log := logger.GetAppLogger()
	address := global.ServerConfig.Address
	log.Infof("Khởi động server tại %s", address)
	if err := fiberApp.Listen(address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Fiber Listen lỗi: %v", err)
	}
}
