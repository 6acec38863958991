package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Yeisssons/helios-contract-analysis-sub000/middleware"
	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
	"github.com/Yeisssons/helios-contract-analysis-sub000/storage"
	"github.com/gin-gonic/gin"
)

// DraftHandler keeps unsaved edit sessions server-side, one per document.
type DraftHandler struct {
	docs   storage.DocumentRepo
	drafts storage.DraftRepo
}

func NewDraftHandler(store storage.Store) *DraftHandler {
	return &DraftHandler{
		docs:   store.Documents(),
		drafts: store.Drafts(),
	}
}

// ownedDocumentID resolves the :id param and checks workspace ownership.
func (h *DraftHandler) ownedDocumentID(c *gin.Context) (string, bool) {
	workspace := middleware.GetWorkspace(c)
	id := c.Param("id")

	doc, err := h.docs.Get(c.Request.Context(), id)
	if err != nil || doc.Workspace != workspace {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return "", false
	}
	return id, true
}

// Save stores the draft payload, replacing any previous draft for the document.
func (h *DraftHandler) Save(c *gin.Context) {
	id, ok := h.ownedDocumentID(c)
	if !ok {
		return
	}

	var payload json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	draft := &model.Draft{
		DocumentID: id,
		Payload:    payload,
		SavedAt:    time.Now(),
	}
	if err := h.drafts.Save(c.Request.Context(), draft); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_id": id,
		"saved_at":    draft.SavedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Get returns the draft for a document. A draft past its TTL counts as gone.
func (h *DraftHandler) Get(c *gin.Context) {
	id, ok := h.ownedDocumentID(c)
	if !ok {
		return
	}

	draft, err := h.drafts.Get(c.Request.Context(), id)
	if err != nil || draft.Stale(time.Now()) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No draft found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_id": draft.DocumentID,
		"payload":     json.RawMessage(draft.Payload),
		"saved_at":    draft.SavedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Delete discards the draft for a document.
func (h *DraftHandler) Delete(c *gin.Context) {
	id, ok := h.ownedDocumentID(c)
	if !ok {
		return
	}

	if err := h.drafts.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No draft found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Draft deleted"})
}
