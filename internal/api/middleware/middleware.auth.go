// Package middleware chứa middleware xác thực và phân quyền của portal.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	basehdl "agency_portal/internal/api/base/handler"
	authmodels "agency_portal/internal/api/auth/models"
	"agency_portal/internal/app"
	"agency_portal/internal/common"
	"agency_portal/internal/logger"
)

// Khóa Locals do middleware auth set.
const (
	LocalUser   = "user"
	LocalUserID = "userID"
)

// AuthMiddleware xác thực Firebase ID token từ header Authorization,
// nạp (hoặc tạo) hồ sơ người dùng và gắn vào context của request.
func AuthMiddleware(application *app.App) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		idToken := strings.TrimPrefix(authHeader, "Bearer ")
		if idToken == authHeader || idToken == "" {
			basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}

		token, err := application.FirebaseAuth.VerifyIDToken(c.Context(), idToken)
		if err != nil {
			logger.GetAppLogger().Debugf("Xác thực token thất bại: %v", err)
			basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}

		email, _ := token.Claims["email"].(string)
		displayName, _ := token.Claims["name"].(string)
		user, err := application.Users.GetOrCreateProfile(c.Context(), token.UID, email, displayName)
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrUserNotFound)
			return nil
		}

		c.Locals(LocalUser, user)
		c.Locals(LocalUserID, user.UID)
		return c.Next()
	}
}

// RequireRoles chặn request nếu vai trò của người gọi không nằm trong danh sách.
// Phải đặt sau AuthMiddleware.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		user := ActorFromContext(c)
		if user == nil {
			basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		basehdl.HandleResponse(c, nil, common.ErrPermissionDenied)
		return nil
	}
}

// RequireStaff chặn request của tài khoản không phải nhân sự nội bộ.
func RequireStaff() fiber.Handler {
	return RequireRoles(authmodels.StaffRoles...)
}

// ActorFromContext trả về hồ sơ người gọi đã được AuthMiddleware gắn vào.
func ActorFromContext(c fiber.Ctx) *authmodels.User {
	user, _ := c.Locals(LocalUser).(*authmodels.User)
	return user
}
