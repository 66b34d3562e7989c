package portalhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	basehdl "agency_portal/internal/api/base/handler"
	authmodels "agency_portal/internal/api/auth/models"
	"agency_portal/internal/api/middleware"
	portaldto "agency_portal/internal/api/portal/dto"
	"agency_portal/internal/app"
	"agency_portal/internal/common"
	"agency_portal/internal/logger"
)

// ProjectHandler xử lý các route project.
type ProjectHandler struct {
	App *app.App
}

// NewProjectHandler tạo ProjectHandler mới.
func NewProjectHandler(application *app.App) *ProjectHandler {
	return &ProjectHandler{App: application}
}

// HandleListProjects xử lý GET /projects.
// Nhân sự nội bộ thấy mọi dự án, client chỉ thấy dự án được gán.
func (h *ProjectHandler) HandleListProjects(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor := middleware.ActorFromContext(c)
		if actor != nil && !authmodels.IsStaffRole(actor.Role) {
			projects, err := h.App.Projects.ListProjectsForClient(c.Context(), actor.UID)
			basehdl.HandleResponse(c, projects, err)
			return nil
		}
		projects, err := h.App.Projects.ListProjects(c.Context(), c.Query("status"))
		basehdl.HandleResponse(c, projects, err)
		return nil
	})
}

// HandleGetProject xử lý GET /projects/:id.
func (h *ProjectHandler) HandleGetProject(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		oid, err := common.ObjectIDFromParam(c.Params("id"))
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		project, err := h.App.Projects.FindOneById(c.Context(), oid)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		// Client chỉ xem được dự án mình được gán
		actor := middleware.ActorFromContext(c)
		if actor != nil && !authmodels.IsStaffRole(actor.Role) {
			assigned := false
			for _, uid := range project.AssignedClients {
				if uid == actor.UID {
					assigned = true
					break
				}
			}
			if !assigned {
				basehdl.HandleResponse(c, nil, common.ErrPermissionDenied)
				return nil
			}
		}

		basehdl.HandleResponse(c, project, nil)
		return nil
	})
}

// HandleCreateProject xử lý POST /projects.
func (h *ProjectHandler) HandleCreateProject(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input portaldto.CreateProjectInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		actor := middleware.ActorFromContext(c)
		project, err := h.App.Projects.CreateProject(c.Context(), actor, &input)
		if err == nil {
			logger.LogAction("project_create", c, map[string]interface{}{"projectId": project.ID.Hex()})
		}
		basehdl.HandleResponse(c, project, err)
		return nil
	})
}

// HandleUpdateProject xử lý PUT /projects/:id.
func (h *ProjectHandler) HandleUpdateProject(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input portaldto.UpdateProjectInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		actor := middleware.ActorFromContext(c)
		project, err := h.App.Projects.UpdateProject(c.Context(), actor, c.Params("id"), &input)
		basehdl.HandleResponse(c, project, err)
		return nil
	})
}

// HandleDeleteProject xử lý DELETE /projects/:id.
func (h *ProjectHandler) HandleDeleteProject(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor := middleware.ActorFromContext(c)
		err := h.App.Projects.DeleteProject(c.Context(), actor, c.Params("id"))
		if err == nil {
			logger.LogAction("project_delete", c, map[string]interface{}{"projectId": c.Params("id")})
		}
		basehdl.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleAddMilestone xử lý POST /projects/:id/milestones.
func (h *ProjectHandler) HandleAddMilestone(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input portaldto.AddMilestoneInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		actor := middleware.ActorFromContext(c)
		project, err := h.App.Projects.AddMilestone(c.Context(), actor, c.Params("id"), &input)
		basehdl.HandleResponse(c, project, err)
		return nil
	})
}

// HandleUpdateMilestone xử lý PUT /projects/:id/milestones.
func (h *ProjectHandler) HandleUpdateMilestone(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input portaldto.UpdateMilestoneInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		actor := middleware.ActorFromContext(c)
		project, err := h.App.Projects.UpdateMilestone(c.Context(), actor, c.Params("id"), &input)
		basehdl.HandleResponse(c, project, err)
		return nil
	})
}

// HandleAssignClients xử lý PUT /projects/:id/clients.
func (h *ProjectHandler) HandleAssignClients(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input portaldto.AssignClientsInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		actor := middleware.ActorFromContext(c)
		project, err := h.App.Projects.AssignClients(c.Context(), actor, c.Params("id"), &input)
		basehdl.HandleResponse(c, project, err)
		return nil
	})
}

// HandleAddInvoice xử lý POST /projects/:id/invoices.
func (h *ProjectHandler) HandleAddInvoice(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input portaldto.AddInvoiceInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		actor := middleware.ActorFromContext(c)
		project, err := h.App.Projects.AddInvoice(c.Context(), actor, c.Params("id"), &input)
		basehdl.HandleResponse(c, project, err)
		return nil
	})
}

// HandleUploadClientFile xử lý POST /projects/:id/files (multipart).
// Client upload file vào dự án của mình.
func (h *ProjectHandler) HandleUploadClientFile(c fiber.Ctx) error {
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

		projectID := c.Params("id")
		objectPath := fmt.Sprintf("projects/%s/files/%s_%s", projectID, uuid.NewString(), fileHeader.Filename)
		url, err := h.App.Storage.Upload(c.Context(), objectPath, file, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer, "Upload file thất bại", common.StatusInternalServerError, err.Error()))
			return nil
		}

		actor := middleware.ActorFromContext(c)
		project, svcErr := h.App.Projects.AddClientFile(c.Context(), actor, projectID, &portaldto.AddClientFileInput{
			Name: fileHeader.Filename,
			URL:  url,
		})
		basehdl.HandleResponse(c, project, svcErr)
		return nil
	})
}

// HandleUploadLogo xử lý POST /projects/:id/logo (multipart).
func (h *ProjectHandler) HandleUploadLogo(c fiber.Ctx) error {
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

		projectID := c.Params("id")
		objectPath := fmt.Sprintf("projects/%s/logo/%s_%s", projectID, uuid.NewString(), fileHeader.Filename)
		url, err := h.App.Storage.Upload(c.Context(), objectPath, file, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer, "Upload logo thất bại", common.StatusInternalServerError, err.Error()))
			return nil
		}

		actor := middleware.ActorFromContext(c)
		project, svcErr := h.App.Projects.SetLogo(c.Context(), actor, projectID, url)
		basehdl.HandleResponse(c, project, svcErr)
		return nil
	})
}
