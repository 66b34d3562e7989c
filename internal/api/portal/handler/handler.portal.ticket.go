package portalhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "agency_portal/internal/api/base/handler"
	authmodels "agency_portal/internal/api/auth/models"
	"agency_portal/internal/api/middleware"
	portaldto "agency_portal/internal/api/portal/dto"
	"agency_portal/internal/app"
	"agency_portal/internal/common"
	appsync "agency_portal/internal/sync"
)

// TicketHandler xử lý các route ticket hỗ trợ.
type TicketHandler struct {
	App *app.App
}

// NewTicketHandler tạo TicketHandler mới.
func NewTicketHandler(application *app.App) *TicketHandler {
	return &TicketHandler{App: application}
}

// HandleListTickets xử lý GET /tickets.
// Nhân sự nội bộ thấy mọi ticket; client thấy ticket gộp từ ba nguồn:
// ticket của mình, ticket lịch sử (trường cũ) và ticket theo dự án được gán.
func (h *TicketHandler) HandleListTickets(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor := middleware.ActorFromContext(c)
		if actor == nil {
			basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		if authmodels.IsStaffRole(actor.Role) {
			tickets, err := h.App.Tickets.ListAll(c.Context())
			basehdl.HandleResponse(c, tickets, err)
			return nil
		}

		own, err := h.App.Tickets.FindByClientID(c.Context(), actor.UID)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		legacy, err := h.App.Tickets.FindByLegacySubmitter(c.Context(), actor.UID)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		projects, err := h.App.Projects.ListProjectsForClient(c.Context(), actor.UID)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		projectIDs := make([]string, 0, len(projects))
		for _, p := range projects {
			projectIDs = append(projectIDs, p.ID.Hex())
		}
		byProject, err := h.App.Tickets.FindByProjectIDs(c.Context(), projectIDs)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		basehdl.HandleResponse(c, appsync.MergeTickets(own, legacy, byProject), nil)
		return nil
	})
}

// HandleCreateTicket xử lý POST /tickets.
func (h *TicketHandler) HandleCreateTicket(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input portaldto.CreateTicketInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		actor := middleware.ActorFromContext(c)
		ticket, err := h.App.Tickets.CreateTicket(c.Context(), actor, &input)
		basehdl.HandleResponse(c, ticket, err)
		return nil
	})
}

// HandleUpdateTicket xử lý PUT /tickets/:id.
func (h *TicketHandler) HandleUpdateTicket(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input portaldto.UpdateTicketInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		actor := middleware.ActorFromContext(c)
		ticket, err := h.App.Tickets.UpdateTicket(c.Context(), actor, c.Params("id"), &input)
		basehdl.HandleResponse(c, ticket, err)
		return nil
	})
}

// HandleDeleteTicket xử lý DELETE /tickets/:id.
func (h *TicketHandler) HandleDeleteTicket(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor := middleware.ActorFromContext(c)
		err := h.App.Tickets.DeleteTicket(c.Context(), actor, c.Params("id"))
		basehdl.HandleResponse(c, nil, err)
		return nil
	})
}
