// Package http exposes the compliance platform over a REST API.
package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Nishasathish105/ai-compliance-platform/internal/alerts"
	"github.com/Nishasathish105/ai-compliance-platform/internal/analytics"
	"github.com/Nishasathish105/ai-compliance-platform/internal/cases"
	"github.com/Nishasathish105/ai-compliance-platform/internal/config"
	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
	"github.com/Nishasathish105/ai-compliance-platform/internal/errs"
	"github.com/Nishasathish105/ai-compliance-platform/internal/store"
	"github.com/Nishasathish105/ai-compliance-platform/internal/verification"
)

// allowedUploadTypes mirrors the product's upload form: images and PDFs only.
var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// Handler holds the services behind the REST API.
type Handler struct {
	records       *store.RecordStore
	verifications *verification.Service
	cases         *cases.Service
	alerts        *alerts.Service
	analytics     *analytics.Service
	storageCfg    *config.StorageConfig
	auditLimit    int
}

// NewHandler wires the API handler.
func NewHandler(
	records *store.RecordStore,
	verifications *verification.Service,
	caseSvc *cases.Service,
	alertSvc *alerts.Service,
	analyticsSvc *analytics.Service,
	storageCfg *config.StorageConfig,
	auditLimit int,
) *Handler {
	return &Handler{
		records:       records,
		verifications: verifications,
		cases:         caseSvc,
		alerts:        alertSvc,
		analytics:     analyticsSvc,
		storageCfg:    storageCfg,
		auditLimit:    auditLimit,
	}
}

// Register mounts all API routes under /api/v1.
func (h *Handler) Register(e *echo.Echo, authSecret string) {
	api := e.Group("/api/v1", OperatorAuth(authSecret))

	api.POST("/documents", h.uploadDocument)
	api.GET("/documents", h.listDocuments)
	api.GET("/documents/:id", h.getDocument)
	api.GET("/documents/:id/verification", h.getVerification)

	api.GET("/cases", h.searchCases)
	api.POST("/cases", h.createCase)
	api.GET("/cases/:id", h.getCase)
	api.PATCH("/cases/:id", h.updateCase)

	api.GET("/alerts", h.listAlerts)
	api.GET("/alerts/unread", h.listUnreadAlerts)
	api.POST("/alerts/:id/read", h.markAlertRead)

	api.GET("/audit", h.listAudit)

	api.GET("/stats/dashboard", h.dashboardStats)
	api.GET("/stats/analytics", h.analyticsStats)
}

func (h *Handler) uploadDocument(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return httpError(errs.Validation("missing file"))
	}
	if file.Size > h.storageCfg.MaxFileSize {
		return httpError(errs.Validation("file size must be less than %d bytes", h.storageCfg.MaxFileSize))
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		return httpError(errs.Validation("only JPG, PNG, WEBP and PDF files are supported"))
	}

	src, err := file.Open()
	if err != nil {
		return httpError(err)
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, h.storageCfg.MaxFileSize+1))
	if err != nil {
		return httpError(err)
	}
	if int64(len(data)) > h.storageCfg.MaxFileSize {
		return httpError(errs.Validation("file size must be less than %d bytes", h.storageCfg.MaxFileSize))
	}

	result, err := h.verifications.UploadAndVerify(c.Request().Context(), operatorID(c), verification.UploadRequest{
		FileName:     file.Filename,
		ContentType:  contentType,
		DocumentType: domain.DocumentType(c.FormValue("document_type")),
		Data:         data,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) listDocuments(c echo.Context) error {
	docs, err := h.records.Documents.ListByOwner(c.Request().Context(), operatorID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *Handler) getDocument(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpError(errs.Validation("invalid document id"))
	}
	doc, err := h.records.Documents.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *Handler) getVerification(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpError(errs.Validation("invalid document id"))
	}
	result, err := h.records.Verifications.GetByDocument(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) searchCases(c echo.Context) error {
	filter := cases.Filter{
		Query:    c.QueryParam("q"),
		Status:   domain.CaseStatus(c.QueryParam("status")),
		Priority: domain.CasePriority(c.QueryParam("priority")),
	}
	matched, err := h.cases.Search(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, matched)
}

func (h *Handler) createCase(c echo.Context) error {
	var req domain.CreateCaseRequest
	if err := c.Bind(&req); err != nil {
		return httpError(errs.Validation("invalid request body"))
	}
	created, err := h.cases.Create(c.Request().Context(), operatorID(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) getCase(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpError(errs.Validation("invalid case id"))
	}
	found, err := h.cases.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, found)
}

func (h *Handler) updateCase(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpError(errs.Validation("invalid case id"))
	}
	var req domain.UpdateCaseRequest
	if err := c.Bind(&req); err != nil {
		return httpError(errs.Validation("invalid request body"))
	}
	updated, err := h.cases.Update(c.Request().Context(), operatorID(c), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) listAlerts(c echo.Context) error {
	out, err := h.alerts.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) listUnreadAlerts(c echo.Context) error {
	out, err := h.alerts.ListUnread(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) markAlertRead(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpError(errs.Validation("invalid alert id"))
	}
	alert, err := h.alerts.MarkRead(c.Request().Context(), operatorID(c), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, alert)
}

func (h *Handler) listAudit(c echo.Context) error {
	limit := h.auditLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return httpError(errs.Validation("invalid limit"))
		}
		limit = parsed
	}
	entries, err := h.records.Audit.List(c.Request().Context(), limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *Handler) dashboardStats(c echo.Context) error {
	stats, err := h.analytics.Dashboard(c.Request().Context(), operatorID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) analyticsStats(c echo.Context) error {
	report, err := h.analytics.Analytics(c.Request().Context(), operatorID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// httpError maps service errors to HTTP status codes with a single
// human-readable message per action.
func httpError(err error) error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	case errors.Is(err, errs.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrAlreadyExists):
		return echo.NewHTTPError(http.StatusConflict, "record already exists")
	case errors.Is(err, errs.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
