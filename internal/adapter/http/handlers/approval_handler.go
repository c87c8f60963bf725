package handlers

import (
	"errors"
	"net/http"

	request "firesec_estimator/internal/adapter/http/dto/request"
	response "firesec_estimator/internal/adapter/http/dto/response"
	"firesec_estimator/internal/usecase"
	"firesec_estimator/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidApprovalPayload = pkg.NewDomainErrorSimple("INVALID_APPROVAL_INPUT", "Invalid approval payload", http.StatusBadRequest)

// ApprovalHandler exposes the approval gate's decision surface.
type ApprovalHandler struct {
	usecase usecase.IApprovalUseCase
}

func NewApprovalHandler(uc usecase.IApprovalUseCase) *ApprovalHandler {
	return &ApprovalHandler{usecase: uc}
}

func (h *ApprovalHandler) CreateApproval(c *gin.Context) {
	var payload request.CreateApprovalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidApprovalPayload.HTTPStatus, errInvalidApprovalPayload.ToHTTPError())
		return
	}

	r, err := h.usecase.CreateApproval(c.Request.Context(), usecase.CreateApprovalInput{
		ProjectID:  payload.ProjectID,
		ProposalID: payload.ProposalID,
		Assignee:   payload.Assignee,
		PDFURL:     payload.PDFURL,
	})
	if err != nil {
		appErr := mapApprovalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromApproval(r))
}

func (h *ApprovalHandler) GetApproval(c *gin.Context) {
	r, err := h.usecase.GetApproval(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapApprovalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromApproval(r))
}

func (h *ApprovalHandler) ListByProject(c *gin.Context) {
	requests, err := h.usecase.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapApprovalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromApprovals(requests))
}

func (h *ApprovalHandler) ListByAssignee(c *gin.Context) {
	requests, err := h.usecase.ListByAssignee(c.Request.Context(), c.Param("assignee"))
	if err != nil {
		appErr := mapApprovalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromApprovals(requests))
}

func (h *ApprovalHandler) Approve(c *gin.Context) {
	var payload request.ApproveRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidApprovalPayload.HTTPStatus, errInvalidApprovalPayload.ToHTTPError())
		return
	}

	r, err := h.usecase.Approve(c.Request.Context(), c.Param("id"), payload.User, payload.Comment)
	if err != nil {
		appErr := mapApprovalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromApproval(r))
}

func (h *ApprovalHandler) Reject(c *gin.Context) {
	var payload request.RejectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidApprovalPayload.HTTPStatus, errInvalidApprovalPayload.ToHTTPError())
		return
	}

	r, err := h.usecase.Reject(c.Request.Context(), c.Param("id"), payload.User, payload.Reason)
	if err != nil {
		appErr := mapApprovalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromApproval(r))
}

func (h *ApprovalHandler) Modify(c *gin.Context) {
	var payload request.ModifyRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidApprovalPayload.HTTPStatus, errInvalidApprovalPayload.ToHTTPError())
		return
	}

	r, err := h.usecase.Modify(c.Request.Context(), c.Param("id"), payload.User, payload.Changes)
	if err != nil {
		appErr := mapApprovalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromApproval(r))
}

func (h *ApprovalHandler) Resubmit(c *gin.Context) {
	var payload request.ResubmitRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidApprovalPayload.HTTPStatus, errInvalidApprovalPayload.ToHTTPError())
		return
	}

	r, err := h.usecase.Resubmit(c.Request.Context(), c.Param("id"), payload.User)
	if err != nil {
		appErr := mapApprovalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromApproval(r))
}

func mapApprovalError(err error) *pkg.DomainError {
	switch {
	case errors.Is(err, usecase.ErrInvalidApprovalInput), errors.Is(err, usecase.ErrRejectionNeedsReason), errors.Is(err, usecase.ErrModificationEmpty):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrApprovalNotFound):
		return pkg.NewDomainErrorSimple("APPROVAL_NOT_FOUND", "Approval request not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrApprovalNotPending), errors.Is(err, usecase.ErrApprovalNotResumable):
		return pkg.NewDomainErrorSimple("INVALID_STATE", "Operation not allowed in current state", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
