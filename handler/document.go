package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Yeisssons/helios-contract-analysis-sub000/calendar"
	"github.com/Yeisssons/helios-contract-analysis-sub000/middleware"
	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
	"github.com/Yeisssons/helios-contract-analysis-sub000/pkg/query"
	"github.com/Yeisssons/helios-contract-analysis-sub000/service"
	"github.com/Yeisssons/helios-contract-analysis-sub000/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DocumentHandler struct {
	files     *service.FileStore
	extractor *service.ExtractorService
	docs      storage.DocumentRepo
	drafts    storage.DraftRepo
}

func NewDocumentHandler(files *service.FileStore, extractor *service.ExtractorService, store storage.Store) *DocumentHandler {
	return &DocumentHandler{
		files:     files,
		extractor: extractor,
		docs:      store.Documents(),
		drafts:    store.Drafts(),
	}
}

// documentSchema drives search, sort and pagination on the list endpoint.
var documentSchema = query.Schema[*model.Document]{
	Searchable: []func(*model.Document) string{
		func(d *model.Document) string { return d.FileName },
		func(d *model.Document) string { return d.ContractType },
		func(d *model.Document) string { return d.Sector },
		func(d *model.Document) string { return strings.Join(d.Tags, " ") },
	},
	Sortable: map[string]func(*model.Document) (any, bool){
		"file_name": func(d *model.Document) (any, bool) { return d.FileName, true },
		"sector":    func(d *model.Document) (any, bool) { return d.Sector, d.Sector != "" },
		"renewal_date": func(d *model.Document) (any, bool) {
			if d.RenewalDate == nil {
				return nil, false
			}
			return *d.RenewalDate, true
		},
		"risk_score": func(d *model.Document) (any, bool) {
			if d.RiskScore == nil {
				return nil, false
			}
			return *d.RiskScore, true
		},
		"created_at": func(d *model.Document) (any, bool) { return d.CreatedAt, true },
	},
}

// Upload handles contract document upload
func (h *DocumentHandler) Upload(c *gin.Context) {
	workspace := middleware.GetWorkspace(c)

	// Get file from form
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	// Validate file type - PDF and DOCX allowed
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" && ext != ".docx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF and DOCX files are allowed"})
		return
	}

	// Determine content type based on extension
	var expectedContentType string
	if ext == ".pdf" {
		expectedContentType = "application/pdf"
	} else {
		expectedContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}

	// Validate content type
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = expectedContentType
	} else if ext == ".pdf" && !strings.Contains(contentType, "pdf") {
		// Try to detect from file header for PDF
		buffer := make([]byte, 512)
		_, err := file.Read(buffer)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
			return
		}
		file.Seek(0, io.SeekStart) // Reset file pointer

		detectedType := http.DetectContentType(buffer)
		if !strings.Contains(detectedType, "pdf") && detectedType != "application/octet-stream" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type"})
			return
		}
		contentType = "application/pdf"
	} else if ext == ".docx" {
		contentType = expectedContentType
	}

	// Generate unique ID and object name
	documentID := uuid.New().String()
	objectName := service.ObjectName(workspace, documentID, header.Filename)

	// Upload to object storage
	err = h.files.Upload(c.Request.Context(), objectName, file, header.Size, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file: " + err.Error()})
		return
	}

	// Presigned URL hands the file to the extraction service
	fileURL, err := h.files.PresignedURL(c.Request.Context(), objectName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate URL: " + err.Error()})
		return
	}

	now := time.Now()
	doc := &model.Document{
		ID:          documentID,
		Workspace:   workspace,
		FileName:    header.Filename,
		StoragePath: objectName,
		Status:      model.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.docs.Save(c.Request.Context(), doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document"})
		return
	}

	// Kick off extraction asynchronously
	go h.runAnalysis(doc, fileURL)

	c.JSON(http.StatusOK, gin.H{
		"id":        documentID,
		"file_name": header.Filename,
		"status":    model.StatusPending,
	})
}

// runAnalysis drives the extraction task for one document in the background.
func (h *DocumentHandler) runAnalysis(doc *model.Document, fileURL string) {
	ctx := context.Background()
	log := slog.With("document_id", doc.ID, "workspace", doc.Workspace)

	h.docs.UpdateStatus(ctx, doc.ID, model.StatusProcessing, "")

	resp, err := h.extractor.CreateTask(ctx, fileURL, doc.ID)
	if err != nil {
		log.Error("failed to create analysis task", "error", err)
		h.docs.UpdateStatus(ctx, doc.ID, model.StatusFailed, err.Error())
		return
	}

	log.Info("analysis task created", "task_id", resp.Data.TaskID)

	doc.TaskID = resp.Data.TaskID
	doc.Status = model.StatusProcessing
	if err := h.docs.Save(ctx, doc); err != nil {
		log.Error("failed to persist task id", "error", err)
	}

	// Poll for result (if no callback configured)
	h.pollAnalysis(ctx, doc, log)
}

// pollAnalysis polls until the task finishes or the attempt budget runs out.
func (h *DocumentHandler) pollAnalysis(ctx context.Context, doc *model.Document, log *slog.Logger) {
	maxAttempts := 60 // 5 minutes with 5 second intervals
	for i := 0; i < maxAttempts; i++ {
		time.Sleep(5 * time.Second)

		status, err := h.extractor.GetTaskStatus(ctx, doc.TaskID)
		if err != nil {
			log.Warn("status poll failed", "attempt", i+1, "error", err)
			continue
		}

		switch status.Data.State {
		case "done":
			if status.Data.Result == nil {
				h.docs.UpdateStatus(ctx, doc.ID, model.StatusFailed, "analysis finished without result")
				return
			}
			service.ApplyAnalysis(doc, status.Data.Result)
			doc.Status = model.StatusCompleted
			doc.ErrorMsg = ""
			if err := h.docs.Save(ctx, doc); err != nil {
				log.Error("failed to save analysis result", "error", err)
				return
			}
			middleware.ObserveDocumentAnalyzed()
			log.Info("analysis completed", "task_id", doc.TaskID)
			return
		case "failed":
			log.Warn("analysis task failed", "error_msg", status.Data.ErrorMsg)
			h.docs.UpdateStatus(ctx, doc.ID, model.StatusFailed, status.Data.ErrorMsg)
			return
		}
	}

	log.Warn("analysis polling timeout", "task_id", doc.TaskID)
	h.docs.UpdateStatus(ctx, doc.ID, model.StatusFailed, "Task polling timeout")
}

// List returns the workspace's documents filtered, sorted and paginated.
func (h *DocumentHandler) List(c *gin.Context) {
	workspace := middleware.GetWorkspace(c)

	docs, err := h.docs.ListByWorkspace(c.Request.Context(), workspace)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	params := query.Params{
		Search:    c.Query("q"),
		SortField: c.Query("sort"),
		SortDir:   query.Direction(c.Query("dir")),
		Page:      page,
		PageSize:  pageSize,
	}

	result := query.Apply(docs, params, documentSchema)

	now := time.Now()
	items := make([]gin.H, len(result.Items))
	for i, doc := range result.Items {
		items[i] = gin.H{
			"id":            doc.ID,
			"file_name":     doc.FileName,
			"contract_type": doc.ContractType,
			"sector":        doc.Sector,
			"renewal_date":  doc.RenewalDate,
			"risk_score":    doc.RiskScore,
			"urgency":       calendar.DocumentStatus(doc, now),
			"tags":          doc.Tags,
			"status":        doc.Status,
			"created_at":    doc.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			"updated_at":    doc.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": items,
		"total":     result.Total,
		"page":      result.Page,
	})
}

// getOwned loads a document and checks workspace ownership.
func (h *DocumentHandler) getOwned(c *gin.Context) *model.Document {
	workspace := middleware.GetWorkspace(c)
	id := c.Param("id")

	doc, err := h.docs.Get(c.Request.Context(), id)
	if err != nil || doc.Workspace != workspace {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return nil
	}
	return doc
}

// Get returns a single document with its extracted data
func (h *DocumentHandler) Get(c *gin.Context) {
	doc := h.getOwned(c)
	if doc == nil {
		return
	}

	c.JSON(http.StatusOK, doc)
}

// GetStatus returns the processing status of a document
func (h *DocumentHandler) GetStatus(c *gin.Context) {
	doc := h.getOwned(c)
	if doc == nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        doc.ID,
		"status":    doc.Status,
		"error_msg": doc.ErrorMsg,
	})
}

// UpdateDocumentRequest carries user edits. Pointer fields distinguish
// "leave as is" from "set to the zero value". FieldRenames maps old extracted
// field names to new ones; the value and its source quote move together.
type UpdateDocumentRequest struct {
	ContractType     *string           `json:"contract_type"`
	Sector           *string           `json:"sector"`
	EffectiveDate    *string           `json:"effective_date"`
	RenewalDate      *string           `json:"renewal_date"`
	NoticePeriodDays *int              `json:"notice_period_days"`
	RiskScore        *float64          `json:"risk_score"`
	Summary          *string           `json:"summary"`
	Tags             *[]string         `json:"tags"`
	ExtractedData    map[string]string `json:"extracted_data"`
	FieldRenames     map[string]string `json:"field_renames"`
}

// Update applies manual corrections to a document.
func (h *DocumentHandler) Update(c *gin.Context) {
	doc := h.getOwned(c)
	if doc == nil {
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.ContractType != nil {
		doc.ContractType = *req.ContractType
	}
	if req.Sector != nil {
		doc.Sector = *req.Sector
	}
	if req.EffectiveDate != nil {
		doc.EffectiveDate = parseDateField(*req.EffectiveDate)
	}
	if req.RenewalDate != nil {
		doc.RenewalDate = parseDateField(*req.RenewalDate)
	}
	if req.NoticePeriodDays != nil {
		doc.NoticePeriodDays = *req.NoticePeriodDays
	}
	if req.RiskScore != nil {
		doc.RiskScore = req.RiskScore
	}
	if req.Summary != nil {
		doc.Summary = *req.Summary
	}
	if req.Tags != nil {
		doc.Tags = *req.Tags
	}

	// Rename extracted fields first so value corrections can target the new
	// names in the same request.
	for oldName, newName := range req.FieldRenames {
		if oldName == newName || newName == "" {
			continue
		}
		if value, ok := doc.ExtractedData[oldName]; ok {
			doc.ExtractedData[newName] = value
			delete(doc.ExtractedData, oldName)
		}
		if quote, ok := doc.SourceQuotes[oldName]; ok {
			doc.SourceQuotes[newName] = quote
			delete(doc.SourceQuotes, oldName)
		}
	}

	if len(req.ExtractedData) > 0 && doc.ExtractedData == nil {
		doc.ExtractedData = make(map[string]string, len(req.ExtractedData))
	}
	for name, value := range req.ExtractedData {
		doc.ExtractedData[name] = value
	}

	doc.UpdatedAt = time.Now()
	if err := h.docs.Save(c.Request.Context(), doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document"})
		return
	}

	// A saved edit supersedes any draft
	h.drafts.Delete(c.Request.Context(), doc.ID)

	c.JSON(http.StatusOK, doc)
}

// parseDateField turns a user-supplied date string into a date pointer.
// An empty string clears the field.
func parseDateField(value string) *time.Time {
	if date, ok := calendar.ExtractDate(value); ok {
		return &date
	}
	return nil
}

// Reanalyze re-runs extraction on an already uploaded document. Results merge
// into the existing data; user corrections survive.
func (h *DocumentHandler) Reanalyze(c *gin.Context) {
	doc := h.getOwned(c)
	if doc == nil {
		return
	}

	if doc.Status == model.StatusProcessing {
		c.JSON(http.StatusConflict, gin.H{"error": "Document is already being analyzed"})
		return
	}

	fileURL, err := h.files.PresignedURL(c.Request.Context(), doc.StoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate URL: " + err.Error()})
		return
	}

	doc.Status = model.StatusPending
	doc.ErrorMsg = ""
	doc.UpdatedAt = time.Now()
	if err := h.docs.Save(c.Request.Context(), doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document"})
		return
	}

	go h.runAnalysis(doc, fileURL)

	c.JSON(http.StatusOK, gin.H{
		"id":     doc.ID,
		"status": model.StatusPending,
	})
}

// Delete removes a document, its stored file and any draft.
func (h *DocumentHandler) Delete(c *gin.Context) {
	doc := h.getOwned(c)
	if doc == nil {
		return
	}

	if err := h.docs.Delete(c.Request.Context(), doc.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}
	h.drafts.Delete(c.Request.Context(), doc.ID)

	if doc.StoragePath != "" {
		if err := h.files.Delete(c.Request.Context(), doc.StoragePath); err != nil {
			slog.Warn("failed to delete stored file",
				"document_id", doc.ID,
				"object", doc.StoragePath,
				"error", err,
			)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
