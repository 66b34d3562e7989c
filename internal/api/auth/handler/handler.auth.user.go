// Package authhdl - Handler HTTP cho domain auth.
package authhdl

import (
	"github.com/gofiber/fiber/v3"

	authdto "agency_portal/internal/api/auth/dto"
	basehdl "agency_portal/internal/api/base/handler"
	"agency_portal/internal/api/middleware"
	"agency_portal/internal/app"
	"agency_portal/internal/common"
	"agency_portal/internal/logger"
)

// UserHandler xử lý các route tài khoản và hồ sơ.
type UserHandler struct {
	App *app.App
}

// NewUserHandler tạo UserHandler mới.
func NewUserHandler(application *app.App) *UserHandler {
	return &UserHandler{App: application}
}

// HandleMe xử lý GET /auth/me: trả về hồ sơ của người gọi và mở phiên
// dữ liệu (đăng ký các feed theo vai trò).
func (h *UserHandler) HandleMe(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor := middleware.ActorFromContext(c)
		if actor == nil {
			basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		if err := h.App.OpenSession(c.Context(), actor.UID, actor.Role); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, actor, nil)
		return nil
	})
}

// HandleCreateClient xử lý POST /auth/clients. Chỉ admin.
func (h *UserHandler) HandleCreateClient(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input authdto.CreateClientInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		actor := middleware.ActorFromContext(c)
		result, err := h.App.Users.CreateClient(c.Context(), actor, &input)
		if err == nil {
			logger.LogAction("client_create", c, map[string]interface{}{"clientUid": result.UID})
		}
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleListClients xử lý GET /auth/clients. Nhân sự nội bộ dùng khi gán dự án.
func (h *UserHandler) HandleListClients(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		clients, err := h.App.Users.ListClients(c.Context())
		basehdl.HandleResponse(c, clients, err)
		return nil
	})
}

// HandleUpdateProfile xử lý PUT /auth/profile.
func (h *UserHandler) HandleUpdateProfile(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input authdto.UpdateProfileInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		actor := middleware.ActorFromContext(c)
		user, err := h.App.Users.UpdateProfile(c.Context(), actor, &input)
		basehdl.HandleResponse(c, user, err)
		return nil
	})
}

// HandleChangePassword xử lý PUT /auth/password.
func (h *UserHandler) HandleChangePassword(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input authdto.ChangePasswordInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		actor := middleware.ActorFromContext(c)
		err := h.App.Users.ChangePassword(c.Context(), actor, &input)
		basehdl.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleLogout xử lý POST /auth/logout: gỡ subscription dữ liệu trước,
// thu hồi refresh token sau.
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor := middleware.ActorFromContext(c)
		if actor == nil {
			basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		err := h.App.CloseSession(c.Context(), actor.UID)
		if err == nil {
			logger.LogAction("logout", c, nil)
		}
		basehdl.HandleResponse(c, nil, err)
		return nil
	})
}
