package handlers

import (
	"context"
	"net/http"

	"inventory-service/internal/commands"
	"inventory-service/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StaffService interface {
	CreateStaff(ctx context.Context, cmd commands.CreateStaffCommand) (*domain.StaffMember, error)
	GetAllStaff(ctx context.Context) ([]domain.StaffMember, error)
	GetStaffByID(ctx context.Context, id uint) (*domain.StaffMember, error)
	UpdateStaff(ctx context.Context, cmd commands.UpdateStaffCommand) (*domain.StaffMember, error)
	DeleteStaff(ctx context.Context, cmd commands.DeleteStaffCommand) error
}

type StaffHandler struct {
	service StaffService
	logger  *zap.Logger
}

func NewStaffHandler(service StaffService, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{service: service, logger: logger}
}

// CreateStaff handles POST /api/staff
// @Summary      Create a staff member
// @Description  Emails are unique across all staff.
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        request  body      StaffRequest  true  "Staff member"
// @Success      201      {object}  StaffResponse
// @Failure      400      {object}  errors.StandardError
// @Router       /staff [post]
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req StaffRequest
	if !bindJSON(c, &req) {
		return
	}

	staff, err := h.service.CreateStaff(c.Request.Context(), req.command())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, newStaffResponse(staff))
}

// ListStaff handles GET /api/staff
// @Summary      List staff members
// @Tags         staff
// @Produce      json
// @Success      200  {array}   StaffResponse
// @Router       /staff [get]
func (h *StaffHandler) ListStaff(c *gin.Context) {
	staff, err := h.service.GetAllStaff(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	resp := make([]StaffResponse, 0, len(staff))
	for i := range staff {
		resp = append(resp, newStaffResponse(&staff[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetStaff handles GET /api/staff/{id}
// @Summary      Get a staff member
// @Tags         staff
// @Produce      json
// @Param        id   path      int  true  "Staff ID"
// @Success      200  {object}  StaffResponse
// @Failure      400  {object}  errors.StandardError
// @Failure      404  {object}  errors.StandardError
// @Router       /staff/{id} [get]
func (h *StaffHandler) GetStaff(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	staff, err := h.service.GetStaffByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newStaffResponse(staff))
}

// UpdateStaff handles PUT /api/staff/{id}
// @Summary      Replace a staff member
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id       path      int           true  "Staff ID"
// @Param        request  body      StaffRequest  true  "Staff member"
// @Success      200      {object}  StaffResponse
// @Failure      400      {object}  errors.StandardError
// @Failure      404      {object}  errors.StandardError
// @Router       /staff/{id} [put]
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req StaffRequest
	if !bindJSON(c, &req) {
		return
	}

	staff, err := h.service.UpdateStaff(c.Request.Context(), commands.UpdateStaffCommand{
		ID:                 id,
		CreateStaffCommand: req.command(),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newStaffResponse(staff))
}

// DeleteStaff handles DELETE /api/staff/{id}
// @Summary      Delete a staff member
// @Tags         staff
// @Param        id   path  int  true  "Staff ID"
// @Success      204
// @Failure      400  {object}  errors.StandardError
// @Failure      404  {object}  errors.StandardError
// @Router       /staff/{id} [delete]
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteStaff(c.Request.Context(), commands.DeleteStaffCommand{ID: id}); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (r StaffRequest) command() commands.CreateStaffCommand {
	return commands.CreateStaffCommand{
		Name:        r.Name,
		Email:       r.Email,
		Designation: r.Designation,
		Department:  r.Department,
		Rights:      r.Rights,
		PhoneNumber: r.PhoneNumber,
		Status:      r.Status,
	}
}
