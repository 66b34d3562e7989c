// Package portalhdl - Handler HTTP cho domain portal.
package portalhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	basehdl "agency_portal/internal/api/base/handler"
	"agency_portal/internal/api/middleware"
	portaldto "agency_portal/internal/api/portal/dto"
	"agency_portal/internal/app"
	"agency_portal/internal/common"
	"agency_portal/internal/logger"
)

// LeadHandler xử lý các route lead.
type LeadHandler struct {
	App *app.App
}

// NewLeadHandler tạo LeadHandler mới.
func NewLeadHandler(application *app.App) *LeadHandler {
	return &LeadHandler{App: application}
}

// HandleListLeads xử lý GET /leads.
func (h *LeadHandler) HandleListLeads(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		leads, err := h.App.Leads.ListLeads(c.Context(), c.Query("status"))
		basehdl.HandleResponse(c, leads, err)
		return nil
	})
}

// HandleCreateLead xử lý POST /leads.
func (h *LeadHandler) HandleCreateLead(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input portaldto.CreateLeadInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		actor := middleware.ActorFromContext(c)
		lead, err := h.App.Leads.CreateLead(c.Context(), actor, &input)
		if err == nil {
			logger.LogAction("lead_create", c, map[string]interface{}{"leadId": lead.ID.Hex()})
		}
		basehdl.HandleResponse(c, lead, err)
		return nil
	})
}

// HandleUpdateLead xử lý PUT /leads/:id.
func (h *LeadHandler) HandleUpdateLead(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input portaldto.UpdateLeadInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		actor := middleware.ActorFromContext(c)
		lead, err := h.App.Leads.UpdateLead(c.Context(), actor, c.Params("id"), &input)
		basehdl.HandleResponse(c, lead, err)
		return nil
	})
}

// HandleDeleteLead xử lý DELETE /leads/:id.
func (h *LeadHandler) HandleDeleteLead(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor := middleware.ActorFromContext(c)
		err := h.App.Leads.DeleteLead(c.Context(), actor, c.Params("id"))
		if err == nil {
			logger.LogAction("lead_delete", c, map[string]interface{}{"leadId": c.Params("id")})
		}
		basehdl.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleUploadDemoFile xử lý POST /leads/:id/demo-files (multipart).
// Upload file lên storage rồi gắn URL vào lead.
func (h *LeadHandler) HandleUploadDemoFile(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput, "Thiếu file upload", common.StatusBadRequest, nil))
			return nil
		}

		file, err := fileHeader.Open()
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		defer file.Close()

		leadID := c.Params("id")
		objectPath := fmt.Sprintf("leads/%s/demo/%s_%s", leadID, uuid.NewString(), fileHeader.Filename)
		url, err := h.App.Storage.Upload(c.Context(), objectPath, file, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer, "Upload file thất bại", common.StatusInternalServerError, err.Error()))
			return nil
		}

		actor := middleware.ActorFromContext(c)
		lead, svcErr := h.App.Leads.AddDemoFile(c.Context(), actor, leadID, &portaldto.AddDemoFileInput{URL: url})
		basehdl.HandleResponse(c, lead, svcErr)
		return nil
	})
}

// HandleConvertLead xử lý POST /leads/:id/convert.
func (h *LeadHandler) HandleConvertLead(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor := middleware.ActorFromContext(c)
		project, err := h.App.Leads.ConvertToProject(c.Context(), actor, c.Params("id"))
		if err == nil {
			logger.LogAction("lead_convert", c, map[string]interface{}{
				"leadId": c.Params("id"), "projectId": project.ID.Hex(),
			})
		}
		basehdl.HandleResponse(c, project, err)
		return nil
	})
}
