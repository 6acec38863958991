package handler

import (
	"net/http"
	"time"

	"github.com/Yeisssons/helios-contract-analysis-sub000/calendar"
	"github.com/Yeisssons/helios-contract-analysis-sub000/middleware"
	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
	"github.com/Yeisssons/helios-contract-analysis-sub000/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler manages user-authored calendar tasks.
type TaskHandler struct {
	tasks storage.TaskRepo
}

func NewTaskHandler(store storage.Store) *TaskHandler {
	return &TaskHandler{tasks: store.Tasks()}
}

type TaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Category    string `json:"category"`
	AssigneeID  string `json:"assignee_id"`
}

// Create adds a task. An unrecognized category falls back to "other".
func (h *TaskHandler) Create(c *gin.Context) {
	workspace := middleware.GetWorkspace(c)

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	date, ok := calendar.ExtractDate(req.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}

	now := time.Now()
	task := &model.Task{
		ID:          uuid.New().String(),
		Workspace:   workspace,
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Category:    string(calendar.ParseCategory(req.Category)),
		AssigneeID:  req.AssigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.tasks.Save(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// List returns all tasks of the workspace.
func (h *TaskHandler) List(c *gin.Context) {
	workspace := middleware.GetWorkspace(c)

	tasks, err := h.tasks.ListByWorkspace(c.Request.Context(), workspace)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *TaskHandler) getOwned(c *gin.Context) *model.Task {
	workspace := middleware.GetWorkspace(c)
	id := c.Param("id")

	task, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil || task.Workspace != workspace {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return nil
	}
	return task
}

// Update replaces a task's editable fields.
func (h *TaskHandler) Update(c *gin.Context) {
	task := h.getOwned(c)
	if task == nil {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	date, ok := calendar.ExtractDate(req.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Date = date
	task.Category = string(calendar.ParseCategory(req.Category))
	task.AssigneeID = req.AssigneeID
	task.UpdatedAt = time.Now()

	if err := h.tasks.Save(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete removes a task.
func (h *TaskHandler) Delete(c *gin.Context) {
	task := h.getOwned(c)
	if task == nil {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), task.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
