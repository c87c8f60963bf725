package routes

import (
	"firesec_estimator/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathProjects  = "/projects"
	PathDocuments = "/documents"
	PathWorkflows = "/workflows"
	PathApprovals = "/approvals"
)

func addEstimatorRoutes(
	rg *gin.RouterGroup,
	projectHandler *handlers.ProjectHandler,
	documentHandler *handlers.DocumentHandler,
	workflowHandler *handlers.WorkflowHandler,
	approvalHandler *handlers.ApprovalHandler,
) {
	projects := rg.Group(PathProjects)
	{
		projects.POST("", projectHandler.CreateProject)
		projects.GET("", projectHandler.ListProjects)
		projects.GET("/:id", projectHandler.GetProject)
		projects.PATCH("/:id/status", projectHandler.TransitionProject)
		projects.POST("/:id/messages", projectHandler.AppendMessage)
		projects.POST("/:id/send-proposal", projectHandler.SendProposal)
		projects.POST("/:id/workflow", workflowHandler.RunWorkflow)
		projects.GET("/:id/workflow", workflowHandler.GetLatestWorkflow)
		projects.POST("/:id/finalize", workflowHandler.FinalizeProposal)
		projects.GET("/:id/approvals", approvalHandler.ListByProject)
	}

	documents := rg.Group(PathDocuments)
	{
		documents.POST("/ingest", documentHandler.IngestDocuments)
		documents.POST("/upload-url", documentHandler.CreateUploadURL)
	}

	workflows := rg.Group(PathWorkflows)
	{
		workflows.GET("/:id", workflowHandler.GetWorkflow)
		workflows.POST("/:id/review", workflowHandler.ReviewWorkflow)
	}

	approvals := rg.Group(PathApprovals)
	{
		approvals.POST("", approvalHandler.CreateApproval)
		approvals.GET("/:id", approvalHandler.GetApproval)
		approvals.PATCH("/:id/approve", approvalHandler.Approve)
		approvals.PATCH("/:id/reject", approvalHandler.Reject)
		approvals.PATCH("/:id/modify", approvalHandler.Modify)
		approvals.PATCH("/:id/resubmit", approvalHandler.Resubmit)
		approvals.GET("/assignee/:assignee", approvalHandler.ListByAssignee)
	}

	rg.GET("/codes/:country", workflowHandler.GetComplianceCodes)
	rg.GET("/labor-rates/:country", workflowHandler.GetLaborRates)
}
