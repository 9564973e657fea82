package analyses

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumelens/internal/extract"
	"resumelens/internal/report"
	"resumelens/internal/shared/metrics"
	"resumelens/internal/shared/server/middleware"
	"resumelens/internal/shared/server/respond"
	"resumelens/internal/shared/util"
)

// DefaultMaxUploadBytes caps resume uploads when the handler is not configured.
const DefaultMaxUploadBytes int64 = 10 << 20

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.createAnalysis)
	rg.GET("/analyses/:id", h.getAnalysis)
	rg.GET("/analyses/:id/report", h.downloadReport)
}

type analysisResponse struct {
	Analysis
	ReportURL string `json:"reportUrl"`
}

func (h *Handler) createAnalysis(c *gin.Context) {
	// Multipart overhead on top of the file itself.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodePayloadTooLarge, "file too large", gin.H{"maxBytes": h.MaxUploadBytes})
			return
		}
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "file is required", []map[string]string{
			{"field": "file", "issue": "missing"},
		})
		return
	}
	if fileHeader.Size > h.MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodePayloadTooLarge, "file too large", gin.H{"maxBytes": h.MaxUploadBytes})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read file", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read file", nil)
		return
	}

	// The name is informational only; an unusable one is dropped.
	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		fileName = ""
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	analysis, err := h.Svc.Analyze(ctx, Input{
		FileName:       fileName,
		MediaType:      fileHeader.Header.Get("Content-Type"),
		Data:           data,
		JobDescription: c.PostForm("jobDescription"),
	})
	if err != nil {
		writeAnalyzeError(c, err)
		return
	}

	c.Set(middleware.AnalysisIDKey, analysis.ID)
	respond.JSON(c, http.StatusCreated, analysisResponse{
		Analysis:  analysis,
		ReportURL: reportURL(c, analysis.ID),
	})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysis, ok := h.lookup(c)
	if !ok {
		return
	}
	respond.OK(c, analysisResponse{
		Analysis:  analysis,
		ReportURL: reportURL(c, analysis.ID),
	})
}

func (h *Handler) downloadReport(c *gin.Context) {
	analysis, ok := h.lookup(c)
	if !ok {
		return
	}
	metrics.IncReportDownloads()
	respond.Attachment(c, report.ContentType, report.FileName, analysis.Report)
}

func (h *Handler) lookup(c *gin.Context) (Analysis, bool) {
	analysisID := strings.TrimSpace(c.Param("id"))
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "analysis id is required", nil)
		return Analysis{}, false
	}
	c.Set(middleware.AnalysisIDKey, analysisID)

	analysis, err := h.Svc.Get(c.Request.Context(), analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "analysis not found or expired", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to fetch analysis", nil)
		}
		return Analysis{}, false
	}
	return analysis, true
}

func writeAnalyzeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid analysis request", nil)
	case errors.Is(err, extract.ErrUnsupportedFormat):
		respond.Error(c, http.StatusUnsupportedMediaType, respond.CodeUnsupportedFormat, "Unsupported file format. Upload a PDF or plain-text resume.", nil)
	case errors.Is(err, extract.ErrEmptyContent):
		respond.Error(c, http.StatusUnprocessableEntity, respond.CodeEmptyContent, "Could not extract text from the file.", nil)
	case errors.Is(err, report.ErrRender):
		respond.Error(c, http.StatusInternalServerError, respond.CodeRender, "failed to render report", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to analyze resume", nil)
	}
}

func reportURL(c *gin.Context, analysisID string) string {
	base := strings.TrimSuffix(c.FullPath(), "/:id")
	base = strings.TrimSuffix(base, "/:id/report")
	if base == "" {
		base = "/analyses"
	}
	return fmt.Sprintf("%s/%s/report", base, analysisID)
}
