package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-system/internal/core/ports"
)

// AdminHandler exposes the approval registry. Routes are mounted behind
// Auth + RBAC(admin), so handlers assume an admin caller.
type AdminHandler struct {
	approvalService ports.ApprovalService
}

func NewAdminHandler(approvalService ports.ApprovalService) *AdminHandler {
	return &AdminHandler{approvalService: approvalService}
}

type approveRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type approveResponse struct {
	UserID   string `json:"user_id"`
	Approved bool   `json:"approved"`
}

// Pending lists users awaiting approval, oldest first.
//
// @Summary      List pending users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.PendingUser
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/pending [get]
func (h *AdminHandler) Pending(c echo.Context) error {
	pending, err := h.approvalService.ListPending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pending)
}

// Approve marks a user approved. Idempotent.
//
// @Summary      Approve a pending user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      approveRequest  true  "User to approve"
// @Success      200   {object}  approveResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/approve [post]
func (h *AdminHandler) Approve(c echo.Context) error {
	var req approveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.approvalService.Approve(c.Request().Context(), req.UserID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, approveResponse{UserID: req.UserID, Approved: true})
}
