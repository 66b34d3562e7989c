// Package router đăng ký toàn bộ route HTTP của portal.
package router

import (
	"github.com/gofiber/fiber/v3"

	authhdl "agency_portal/internal/api/auth/handler"
	"agency_portal/internal/api/middleware"
	portalhdl "agency_portal/internal/api/portal/handler"
	"agency_portal/internal/app"
)

// RoutePrefix giữ các prefix chung của API.
type RoutePrefix struct {
	Base string // /api
	V1   string // /api/v1
}

// NewRoutePrefix trả về prefix mặc định.
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{Base: base, V1: base + "/v1"}
}

// RegisterRouteWithMiddleware đăng ký route qua group + .Use().
// Fiber v3 không chạy middleware khi truyền trực tiếp vào router.Get(path, mw, handler);
// phải đăng ký middleware bằng .Use() trên group.
func RegisterRouteWithMiddleware(router fiber.Router, prefix, method, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	group := router.Group(prefix)
	for _, mw := range middlewares {
		group.Use(mw)
	}
	switch method {
	case fiber.MethodGet:
		group.Get(path, handler)
	case fiber.MethodPost:
		group.Post(path, handler)
	case fiber.MethodPut:
		group.Put(path, handler)
	case fiber.MethodDelete:
		group.Delete(path, handler)
	}
}

// RegisterAllRoutes đăng ký mọi route của portal lên fiber app.
func RegisterAllRoutes(fiberApp *fiber.App, application *app.App) {
	prefix := NewRoutePrefix()
	v1 := fiberApp.Group(prefix.V1)

	auth := middleware.AuthMiddleware(application)
	staff := middleware.RequireStaff()
	admin := middleware.RequireRoles("admin")

	authed := []fiber.Handler{auth}
	staffOnly := []fiber.Handler{auth, staff}
	adminOnly := []fiber.Handler{auth, admin}

	// Auth
	userHandler := authhdl.NewUserHandler(application)
	RegisterRouteWithMiddleware(v1, "/auth", fiber.MethodGet, "/me", authed, userHandler.HandleMe)
	RegisterRouteWithMiddleware(v1, "/auth", fiber.MethodPut, "/profile", authed, userHandler.HandleUpdateProfile)
	RegisterRouteWithMiddleware(v1, "/auth", fiber.MethodPut, "/password", authed, userHandler.HandleChangePassword)
	RegisterRouteWithMiddleware(v1, "/auth", fiber.MethodPost, "/logout", authed, userHandler.HandleLogout)
	RegisterRouteWithMiddleware(v1, "/auth", fiber.MethodPost, "/clients", adminOnly, userHandler.HandleCreateClient)
	RegisterRouteWithMiddleware(v1, "/auth", fiber.MethodGet, "/clients", staffOnly, userHandler.HandleListClients)

	// Leads: chỉ nhân sự nội bộ
	leadHandler := portalhdl.NewLeadHandler(application)
	RegisterRouteWithMiddleware(v1, "/leads", fiber.MethodGet, "/", staffOnly, leadHandler.HandleListLeads)
	RegisterRouteWithMiddleware(v1, "/leads", fiber.MethodPost, "/", staffOnly, leadHandler.HandleCreateLead)
	RegisterRouteWithMiddleware(v1, "/leads", fiber.MethodPut, "/:id", staffOnly, leadHandler.HandleUpdateLead)
	RegisterRouteWithMiddleware(v1, "/leads", fiber.MethodDelete, "/:id", staffOnly, leadHandler.HandleDeleteLead)
	RegisterRouteWithMiddleware(v1, "/leads", fiber.MethodPost, "/:id/demo-files", staffOnly, leadHandler.HandleUploadDemoFile)
	RegisterRouteWithMiddleware(v1, "/leads", fiber.MethodPost, "/:id/convert", staffOnly, leadHandler.HandleConvertLead)

	// Projects: client xem dự án được gán, nhân sự quản lý đầy đủ
	projectHandler := portalhdl.NewProjectHandler(application)
	RegisterRouteWithMiddleware(v1, "/projects", fiber.MethodGet, "/", authed, projectHandler.HandleListProjects)
	RegisterRouteWithMiddleware(v1, "/projects", fiber.MethodGet, "/:id", authed, projectHandler.HandleGetProject)
	RegisterRouteWithMiddleware(v1, "/projects", fiber.MethodPost, "/", staffOnly, projectHandler.HandleCreateProject)
	RegisterRouteWithMiddleware(v1, "/projects", fiber.MethodPut, "/:id", staffOnly, projectHandler.HandleUpdateProject)
	RegisterRouteWithMiddleware(v1, "/projects", fiber.MethodDelete, "/:id", staffOnly, projectHandler.HandleDeleteProject)
	RegisterRouteWithMiddleware(v1, "/projects", fiber.MethodPost, "/:id/milestones", staffOnly, projectHandler.HandleAddMilestone)
	RegisterRouteWithMiddleware(v1, "/projects", fiber.MethodPut, "/:id/milestones", staffOnly, projectHandler.HandleUpdateMilestone)
	RegisterRouteWithMiddleware(v1, "/projects", fiber.MethodPut, "/:id/clients", staffOnly, projectHandler.HandleAssignClients)
	RegisterRouteWithMiddleware(v1, "/projects", fiber.MethodPost, "/:id/invoices", staffOnly, projectHandler.HandleAddInvoice)
	RegisterRouteWithMiddleware(v1, "/projects", fiber.MethodPost, "/:id/files", authed, projectHandler.HandleUploadClientFile)
	RegisterRouteWithMiddleware(v1, "/projects", fiber.MethodPost, "/:id/logo", staffOnly, projectHandler.HandleUploadLogo)

	// Tickets
	ticketHandler := portalhdl.NewTicketHandler(application)
	RegisterRouteWithMiddleware(v1, "/tickets", fiber.MethodGet, "/", authed, ticketHandler.HandleListTickets)
	RegisterRouteWithMiddleware(v1, "/tickets", fiber.MethodPost, "/", authed, ticketHandler.HandleCreateTicket)
	RegisterRouteWithMiddleware(v1, "/tickets", fiber.MethodPut, "/:id", authed, ticketHandler.HandleUpdateTicket)
	RegisterRouteWithMiddleware(v1, "/tickets", fiber.MethodDelete, "/:id", staffOnly, ticketHandler.HandleDeleteTicket)

	// Chat theo dự án
	chatHandler := portalhdl.NewChatHandler(application)
	RegisterRouteWithMiddleware(v1, "/messages", fiber.MethodGet, "/", authed, chatHandler.HandleListMessages)
	RegisterRouteWithMiddleware(v1, "/messages", fiber.MethodPost, "/", authed, chatHandler.HandleSendMessage)

	// Lưu trữ và nhật ký hoạt động: chỉ nhân sự nội bộ
	archiveHandler := portalhdl.NewArchiveHandler(application)
	RegisterRouteWithMiddleware(v1, "/archived", fiber.MethodGet, "/", staffOnly, archiveHandler.HandleListArchived)
	RegisterRouteWithMiddleware(v1, "/archived", fiber.MethodPost, "/:id/restore", staffOnly, archiveHandler.HandleRestore)
	RegisterRouteWithMiddleware(v1, "/leads", fiber.MethodPost, "/:id/archive", staffOnly, archiveHandler.HandleArchiveLead)
	RegisterRouteWithMiddleware(v1, "/projects", fiber.MethodPost, "/:id/archive", staffOnly, archiveHandler.HandleArchiveProject)
	RegisterRouteWithMiddleware(v1, "/activity", fiber.MethodGet, "/", staffOnly, archiveHandler.HandleListActivity)
}
