package handler

import (
	"net/http"
	"time"

	"github.com/Yeisssons/helios-contract-analysis-sub000/middleware"
	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
	"github.com/Yeisssons/helios-contract-analysis-sub000/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TeamHandler manages the workspace's team member records.
type TeamHandler struct {
	team storage.TeamRepo
}

func NewTeamHandler(store storage.Store) *TeamHandler {
	return &TeamHandler{team: store.Team()}
}

type TeamMemberRequest struct {
	Email  string `json:"email" binding:"required"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

func normalizeMemberStatus(status string) string {
	switch status {
	case model.MemberActive, model.MemberInvited, model.MemberInactive:
		return status
	}
	return model.MemberInvited
}

// Create adds a team member. New members default to invited.
func (h *TeamHandler) Create(c *gin.Context) {
	workspace := middleware.GetWorkspace(c)

	var req TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	now := time.Now()
	member := &model.TeamMember{
		ID:        uuid.New().String(),
		Workspace: workspace,
		Email:     req.Email,
		Name:      req.Name,
		Role:      req.Role,
		Status:    normalizeMemberStatus(req.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.team.Save(c.Request.Context(), member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save member"})
		return
	}

	c.JSON(http.StatusOK, memberJSON(member))
}

// List returns the workspace's team members.
func (h *TeamHandler) List(c *gin.Context) {
	workspace := middleware.GetWorkspace(c)

	members, err := h.team.ListByWorkspace(c.Request.Context(), workspace)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list members"})
		return
	}

	items := make([]gin.H, len(members))
	for i := range members {
		items[i] = memberJSON(&members[i])
	}

	c.JSON(http.StatusOK, gin.H{"members": items})
}

func memberJSON(m *model.TeamMember) gin.H {
	return gin.H{
		"id":           m.ID,
		"email":        m.Email,
		"name":         m.Name,
		"role":         m.Role,
		"status":       m.Status,
		"status_label": m.StatusLabel(),
		"created_at":   m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		"updated_at":   m.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *TeamHandler) getOwned(c *gin.Context) *model.TeamMember {
	workspace := middleware.GetWorkspace(c)
	id := c.Param("id")

	member, err := h.team.Get(c.Request.Context(), id)
	if err != nil || member.Workspace != workspace {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return nil
	}
	return member
}

// Update replaces a member's editable fields.
func (h *TeamHandler) Update(c *gin.Context) {
	member := h.getOwned(c)
	if member == nil {
		return
	}

	var req TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	member.Email = req.Email
	member.Name = req.Name
	member.Role = req.Role
	member.Status = normalizeMemberStatus(req.Status)
	member.UpdatedAt = time.Now()

	if err := h.team.Save(c.Request.Context(), member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save member"})
		return
	}

	c.JSON(http.StatusOK, memberJSON(member))
}

// Delete removes a team member.
func (h *TeamHandler) Delete(c *gin.Context) {
	member := h.getOwned(c)
	if member == nil {
		return
	}

	if err := h.team.Delete(c.Request.Context(), member.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}
