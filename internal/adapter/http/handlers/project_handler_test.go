package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firesec_estimator/internal/adapter/http/handlers/mocks"
	"firesec_estimator/internal/domain/entities"
	"firesec_estimator/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestProjectHandler_CreateProject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProjectUseCase(ctrl)
		h := NewProjectHandler(uc)

		r := gin.New()
		r.POST("/v1/projects", h.CreateProject)

		req := httptest.NewRequest(http.MethodPost, "/v1/projects", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing client name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProjectUseCase(ctrl)
		h := NewProjectHandler(uc)

		r := gin.New()
		r.POST("/v1/projects", h.CreateProject)

		req := httptest.NewRequest(http.MethodPost, "/v1/projects", bytes.NewBufferString(`{"project_name":"Warehouse Retrofit"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProjectUseCase(ctrl)
		h := NewProjectHandler(uc)

		r := gin.New()
		r.POST("/v1/projects", h.CreateProject)

		now := time.Now().UTC()
		uc.EXPECT().CreateProject(gomock.Any(), gomock.AssignableToTypeOf(usecase.CreateProjectInput{})).DoAndReturn(
			func(_ context.Context, in usecase.CreateProjectInput) (entities.Project, error) {
				if in.ProjectName != "Warehouse Retrofit" || in.ClientName != "Acme Corp" || in.Location.Country != "US" {
					t.Fatalf("unexpected input: %+v", in)
				}
				return entities.Project{
					ID:          "proj-1",
					ProjectName: in.ProjectName,
					ClientName:  in.ClientName,
					Status:      entities.ProjectStatusDraft,
					Version:     1,
					CreatedAt:   now,
					UpdatedAt:   now,
				}, nil
			},
		)

		body := `{"project_name":"Warehouse Retrofit","client_name":"Acme Corp","location":{"country":"US","state_province":"CA"}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/projects", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}

		var res map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if res["id"] != "proj-1" || res["status"] != "draft" {
			t.Fatalf("unexpected body: %v", res)
		}
	})
}

func TestProjectHandler_GetProject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProjectUseCase(ctrl)
		h := NewProjectHandler(uc)

		r := gin.New()
		r.GET("/v1/projects/:id", h.GetProject)

		uc.EXPECT().GetProject(gomock.Any(), "missing").Return(entities.Project{}, usecase.ErrProjectNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/projects/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("internal error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProjectUseCase(ctrl)
		h := NewProjectHandler(uc)

		r := gin.New()
		r.GET("/v1/projects/:id", h.GetProject)

		uc.EXPECT().GetProject(gomock.Any(), "proj-1").Return(entities.Project{}, errors.New("db"))

		req := httptest.NewRequest(http.MethodGet, "/v1/projects/proj-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestProjectHandler_TransitionProject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("illegal transition maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProjectUseCase(ctrl)
		h := NewProjectHandler(uc)

		r := gin.New()
		r.PATCH("/v1/projects/:id/status", h.TransitionProject)

		uc.EXPECT().TransitionProject(gomock.Any(), "proj-1", entities.ProjectStatusWon, "client signed").
			Return(entities.Project{}, usecase.ErrIllegalTransition)

		req := httptest.NewRequest(http.MethodPatch, "/v1/projects/proj-1/status", bytes.NewBufferString(`{"status":"won","reason":"client signed"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProjectUseCase(ctrl)
		h := NewProjectHandler(uc)

		r := gin.New()
		r.PATCH("/v1/projects/:id/status", h.TransitionProject)

		uc.EXPECT().TransitionProject(gomock.Any(), "proj-1", entities.ProjectStatusEstimationInProgress, "").
			Return(entities.Project{ID: "proj-1", Status: entities.ProjectStatusEstimationInProgress}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/projects/proj-1/status", bytes.NewBufferString(`{"status":"estimation_in_progress"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
