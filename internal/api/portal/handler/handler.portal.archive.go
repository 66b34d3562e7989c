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

// ArchiveHandler xử lý lưu trữ, khôi phục và nhật ký hoạt động.
type ArchiveHandler struct {
	App *app.App
}

// NewArchiveHandler tạo ArchiveHandler mới.
func NewArchiveHandler(application *app.App) *ArchiveHandler {
	return &ArchiveHandler{App: application}
}

// HandleListArchived xử lý GET /archived.
func (h *ArchiveHandler) HandleListArchived(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var query portaldto.ListArchivedQuery
		if err := c.Bind().Query(&query); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		records, err := h.App.Archive.ListArchived(c.Context(), &query)
		basehdl.HandleResponse(c, records, err)
		return nil
	})
}

// HandleArchiveLead xử lý POST /leads/:id/archive.
func (h *ArchiveHandler) HandleArchiveLead(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor := middleware.ActorFromContext(c)
		record, err := h.App.Archive.ArchiveLead(c.Context(), actor, c.Params("id"))
		if err == nil {
			logger.LogAction("lead_archive", c, map[string]interface{}{"leadId": c.Params("id")})
		}
		basehdl.HandleResponse(c, record, err)
		return nil
	})
}

// HandleArchiveProject xử lý POST /projects/:id/archive.
func (h *ArchiveHandler) HandleArchiveProject(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor := middleware.ActorFromContext(c)
		record, err := h.App.Archive.ArchiveProject(c.Context(), actor, c.Params("id"))
		if err == nil {
			logger.LogAction("project_archive", c, map[string]interface{}{"projectId": c.Params("id")})
		}
		basehdl.HandleResponse(c, record, err)
		return nil
	})
}

// HandleRestore xử lý POST /archived/:id/restore.
func (h *ArchiveHandler) HandleRestore(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor := middleware.ActorFromContext(c)
		err := h.App.Archive.Restore(c.Context(), actor, c.Params("id"))
		if err == nil {
			logger.LogAction("archive_restore", c, map[string]interface{}{"archivedId": c.Params("id")})
		}
		basehdl.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleListActivity xử lý GET /activity.
func (h *ArchiveHandler) HandleListActivity(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var query portaldto.ListActivityQuery
		if err := c.Bind().Query(&query); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		// Có page thì trả về dạng phân trang, không thì trả danh sách mới nhất
		if query.Page > 0 {
			result, err := h.App.Activity.ListPage(c.Context(), query.Page, query.Limit)
			basehdl.HandleResponse(c, result, err)
			return nil
		}
		entries, err := h.App.Activity.ListRecent(c.Context(), query.Limit)
		basehdl.HandleResponse(c, entries, err)
		return nil
	})
}
