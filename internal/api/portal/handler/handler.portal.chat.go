package portalhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "agency_portal/internal/api/base/handler"
	"agency_portal/internal/api/middleware"
	portaldto "agency_portal/internal/api/portal/dto"
	"agency_portal/internal/app"
	"agency_portal/internal/common"
	"agency_portal/internal/logger"
)

// ChatHandler xử lý các route tin nhắn dự án.
type ChatHandler struct {
	App *app.App
}

// NewChatHandler tạo ChatHandler mới.
func NewChatHandler(application *app.App) *ChatHandler {
	return &ChatHandler{App: application}
}

// HandleListMessages xử lý GET /messages?projectId=...&limit=...&before=...
// Lần mở đầu tiên cũng đăng ký feed tin nhắn sống cho phòng chat đó.
func (h *ChatHandler) HandleListMessages(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var query portaldto.ListMessagesQuery
		if err := c.Bind().Query(&query); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		messages, err := h.App.Chat.ListMessages(c.Context(), &query)
		if err == nil && query.Before == 0 {
			// Subscription trùng key được adapter bỏ qua
			if subErr := h.App.Feeds.SubscribeProjectChat(c.Context(), query.ProjectID); subErr != nil {
				logger.GetAppLogger().Warnf("Không đăng ký được feed chat cho dự án %s: %v", query.ProjectID, subErr)
			}
		}
		basehdl.HandleResponse(c, messages, err)
		return nil
	})
}

// HandleSendMessage xử lý POST /messages.
func (h *ChatHandler) HandleSendMessage(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input portaldto.SendMessageInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		actor := middleware.ActorFromContext(c)
		message, err := h.App.Chat.SendMessage(c.Context(), actor, &input)
		basehdl.HandleResponse(c, message, err)
		return nil
	})
}
