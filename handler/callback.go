package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Yeisssons/helios-contract-analysis-sub000/middleware"
	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
	"github.com/Yeisssons/helios-contract-analysis-sub000/service"
	"github.com/Yeisssons/helios-contract-analysis-sub000/storage"
	"github.com/gin-gonic/gin"
)

// CallbackHandler receives the extraction service's signed completion
// callbacks, the alternative to polling.
type CallbackHandler struct {
	extractor *service.ExtractorService
	docs      storage.DocumentRepo
}

func NewCallbackHandler(extractor *service.ExtractorService, store storage.Store) *CallbackHandler {
	return &CallbackHandler{
		extractor: extractor,
		docs:      store.Documents(),
	}
}

type CallbackRequest struct {
	Checksum string `json:"checksum"`
	Content  string `json:"content"`
}

type CallbackContent struct {
	TaskID    string                  `json:"task_id"`
	DataID    string                  `json:"data_id"`
	State     string                  `json:"state"`
	Result    *service.AnalysisResult `json:"result,omitempty"`
	ResultURL string                  `json:"result_url,omitempty"`
	ErrorMsg  string                  `json:"err_msg,omitempty"`
}

// HandleCallback verifies and applies one completion callback.
func (h *CallbackHandler) HandleCallback(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Parse content
	var content CallbackContent
	if err := json.Unmarshal([]byte(req.Content), &content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content format"})
		return
	}

	// The checksum binds the payload to our document ID and the shared seed
	if !h.extractor.VerifyCallback(req.Checksum, req.Content, content.DataID) {
		slog.Warn("callback checksum mismatch", "data_id", content.DataID, "task_id", content.TaskID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid checksum"})
		return
	}

	// DataID is our document ID
	doc, err := h.docs.Get(c.Request.Context(), content.DataID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	switch content.State {
	case "done":
		result := content.Result
		if result == nil && content.ResultURL != "" {
			result, err = h.extractor.FetchResult(c.Request.Context(), content.ResultURL)
			if err != nil {
				h.docs.UpdateStatus(c.Request.Context(), doc.ID, model.StatusFailed, "Failed to fetch result: "+err.Error())
				c.JSON(http.StatusOK, gin.H{"message": "Callback received"})
				return
			}
		}
		if result == nil {
			h.docs.UpdateStatus(c.Request.Context(), doc.ID, model.StatusFailed, "Callback carried no result")
			c.JSON(http.StatusOK, gin.H{"message": "Callback received"})
			return
		}

		service.ApplyAnalysis(doc, result)
		doc.Status = model.StatusCompleted
		doc.ErrorMsg = ""
		if err := h.docs.Save(c.Request.Context(), doc); err != nil {
			slog.Error("failed to save callback result", "document_id", doc.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save result"})
			return
		}
		middleware.ObserveDocumentAnalyzed()
	case "failed":
		h.docs.UpdateStatus(c.Request.Context(), doc.ID, model.StatusFailed, content.ErrorMsg)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Callback received"})
}
