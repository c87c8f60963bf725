package handlers

import (
	"errors"
	"io"
	"net/http"

	request "firesec_estimator/internal/adapter/http/dto/request"
	response "firesec_estimator/internal/adapter/http/dto/response"
	"firesec_estimator/internal/domain/entities"
	"firesec_estimator/internal/usecase"
	"firesec_estimator/internal/usecase/interfaces"
	"firesec_estimator/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidUpload = pkg.NewDomainErrorSimple("INVALID_UPLOAD", "Invalid upload payload", http.StatusBadRequest)

// DocumentHandler exposes the ingestion pipeline: multipart batch
// ingestion and presigned direct uploads.
type DocumentHandler struct {
	ingestion usecase.IIngestionUseCase
	store     interfaces.IObjectStore
}

func NewDocumentHandler(ingestion usecase.IIngestionUseCase, store interfaces.IObjectStore) *DocumentHandler {
	return &DocumentHandler{ingestion: ingestion, store: store}
}

// IngestDocuments accepts a multipart form under the "files" field and
// returns the chunks for every supported file. Unsupported or failing
// files are skipped, matching batch semantics.
func (h *DocumentHandler) IngestDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		c.JSON(errInvalidUpload.HTTPStatus, errInvalidUpload.ToHTTPError())
		return
	}

	var files []usecase.FileInput
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			c.JSON(errInvalidUpload.HTTPStatus, errInvalidUpload.ToHTTPError())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(errInvalidUpload.HTTPStatus, errInvalidUpload.ToHTTPError())
			return
		}
		files = append(files, usecase.FileInput{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
			ProjectID:   c.Query("project_id"),
		})
	}

	docs, chunks, err := h.ingestion.IngestBatch(c.Request.Context(), files)
	if err != nil {
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.IngestResponse{Documents: docs, ChunkCount: len(chunks), Chunks: chunks})
}

// CreateUploadURL returns a presigned URL a client can PUT a document to
// directly, bypassing the API for large files.
func (h *DocumentHandler) CreateUploadURL(c *gin.Context) {
	var payload request.UploadURLRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidUpload.HTTPStatus, errInvalidUpload.ToHTTPError())
		return
	}

	key := "uploads/" + payload.Filename
	url, err := h.store.PresignedUploadURL(c.Request.Context(), key, payload.ContentType)
	if err != nil {
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.UploadURLResponse{URL: url, Key: key})
}

func mapDocumentError(err error) *pkg.DomainError {
	var unsupported *entities.UnsupportedTypeError
	var extraction *entities.ExtractionFailure
	switch {
	case errors.As(err, &unsupported):
		return pkg.NewDomainErrorSimple("UNSUPPORTED_TYPE", unsupported.Error(), http.StatusUnsupportedMediaType)
	case errors.As(err, &extraction):
		return pkg.NewDomainErrorSimple("EXTRACTION_FAILED", extraction.Error(), http.StatusUnprocessableEntity)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
