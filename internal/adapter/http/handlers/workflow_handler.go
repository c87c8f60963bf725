package handlers

import (
	"errors"
	"io"
	"net/http"

	request "firesec_estimator/internal/adapter/http/dto/request"
	response "firesec_estimator/internal/adapter/http/dto/response"
	"firesec_estimator/internal/domain/entities"
	"firesec_estimator/internal/usecase"
	"firesec_estimator/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidWorkflowPayload = pkg.NewDomainErrorSimple("INVALID_WORKFLOW_INPUT", "Invalid workflow payload", http.StatusBadRequest)

// WorkflowHandler drives the estimation pipeline over HTTP: starting a
// run from uploaded documents, inspecting it, reviewing its output and
// finalizing the proposal. Lookup endpoints for compliance codes and
// labor rates live here too since they serve the same estimation surface.
type WorkflowHandler struct {
	workflows usecase.IWorkflowUseCase
	ingestion usecase.IIngestionUseCase
	estimates usecase.IEstimateUseCase
}

func NewWorkflowHandler(workflows usecase.IWorkflowUseCase, ingestion usecase.IIngestionUseCase, estimates usecase.IEstimateUseCase) *WorkflowHandler {
	return &WorkflowHandler{workflows: workflows, ingestion: ingestion, estimates: estimates}
}

// RunWorkflow ingests the multipart "files" field and runs the pipeline
// for the project in the path.
func (h *WorkflowHandler) RunWorkflow(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		c.JSON(errInvalidWorkflowPayload.HTTPStatus, errInvalidWorkflowPayload.ToHTTPError())
		return
	}

	projectID := c.Param("id")
	var files []usecase.FileInput
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			c.JSON(errInvalidWorkflowPayload.HTTPStatus, errInvalidWorkflowPayload.ToHTTPError())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(errInvalidWorkflowPayload.HTTPStatus, errInvalidWorkflowPayload.ToHTTPError())
			return
		}
		files = append(files, usecase.FileInput{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
			ProjectID:   projectID,
		})
	}

	_, chunks, err := h.ingestion.IngestBatch(c.Request.Context(), files)
	if err != nil {
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	wf, err := h.workflows.RunWorkflow(c.Request.Context(), projectID, chunks)
	if err != nil {
		// A failed run still reports its partial state.
		if wf.WorkflowID != "" {
			c.JSON(http.StatusUnprocessableEntity, response.FromWorkflow(wf))
			return
		}
		appErr := mapWorkflowError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromWorkflow(wf))
}

func (h *WorkflowHandler) GetWorkflow(c *gin.Context) {
	wf, err := h.workflows.GetWorkflow(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapWorkflowError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkflow(wf))
}

func (h *WorkflowHandler) GetLatestWorkflow(c *gin.Context) {
	wf, err := h.workflows.GetLatestWorkflow(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapWorkflowError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkflow(wf))
}

func (h *WorkflowHandler) ReviewWorkflow(c *gin.Context) {
	var payload request.ReviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWorkflowPayload.HTTPStatus, errInvalidWorkflowPayload.ToHTTPError())
		return
	}

	decisions := make(map[string]entities.ReviewStatus, len(payload.Decisions))
	for item, decision := range payload.Decisions {
		decisions[item] = entities.ReviewStatus(decision)
	}

	wf, err := h.workflows.ReviewWorkflow(c.Request.Context(), c.Param("id"), decisions, payload.Notes)
	if err != nil {
		appErr := mapWorkflowError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWorkflow(wf))
}

func (h *WorkflowHandler) FinalizeProposal(c *gin.Context) {
	var payload request.FinalizeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWorkflowPayload.HTTPStatus, errInvalidWorkflowPayload.ToHTTPError())
		return
	}

	proposal, err := h.workflows.GenerateFinalProposal(c.Request.Context(), c.Param("id"), payload.ReviewNotes)
	if err != nil {
		appErr := mapWorkflowError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, proposal)
}

func (h *WorkflowHandler) GetComplianceCodes(c *gin.Context) {
	country := c.Param("country")
	codes, err := h.estimates.ComplianceCodes(country)
	if err != nil {
		appErr := mapWorkflowError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.ComplianceCodesResponse{Country: country, Codes: codes})
}

func (h *WorkflowHandler) GetLaborRates(c *gin.Context) {
	country := c.Param("country")
	rates, err := h.estimates.LaborRates(country)
	if err != nil {
		appErr := mapWorkflowError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.LaborRatesResponse{Country: country, Rates: rates})
}

func mapWorkflowError(err error) *pkg.DomainError {
	switch {
	case errors.Is(err, usecase.ErrWorkflowNotFound):
		return pkg.NewDomainErrorSimple("WORKFLOW_NOT_FOUND", "Workflow not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return pkg.NewDomainErrorSimple("PROJECT_NOT_FOUND", "Project not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrWorkflowNotReviewable), errors.Is(err, usecase.ErrIllegalTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATE", "Operation not allowed in current state", http.StatusConflict)
	case errors.Is(err, usecase.ErrTransitionConflict):
		return pkg.NewDomainErrorSimple("TRANSITION_CONFLICT", "Project was modified concurrently", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidReviewDecision), errors.Is(err, usecase.ErrNoEstimateRecorded), errors.Is(err, usecase.ErrInvalidProjectID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCountry):
		return pkg.NewDomainErrorSimple("UNKNOWN_COUNTRY", "No data for requested country", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
