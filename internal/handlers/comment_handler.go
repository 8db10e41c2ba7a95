package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"teamtask-api/internal/database"
	"teamtask-api/internal/models"
)

// CreateCommentRequest represents the request payload for posting a comment
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// GetComments handles GET /api/tasks/:id/comments
// Comment visibility follows the task's department-based visibility.
func (a *API) GetComments(c *gin.Context) {
	staff, ok := a.currentStaff(c)
	if !ok {
		return
	}

	task, _, ok := a.visibleTask(c, staff, c.Param("id"))
	if !ok {
		return
	}

	var comments []models.Comment
	if err := database.GetDB().
		Where("task_id = ?", task.ID).
		Order("created_at asc").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"count":    len(comments),
	})
}

// CreateComment handles POST /api/tasks/:id/comments
func (a *API) CreateComment(c *gin.Context) {
	staff, ok := a.currentStaff(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment content is required"})
		return
	}
	if len([]rune(req.Content)) > models.MaxCommentLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment must be 2000 characters or less"})
		return
	}

	task, assignees, ok := a.visibleTask(c, staff, c.Param("id"))
	if !ok {
		return
	}

	comment := models.Comment{
		ID:      uuid.NewString(),
		TaskID:  task.ID,
		StaffID: staff.ID,
		Content: req.Content,
	}
	if err := database.GetDB().Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	if a.notify != nil {
		// notify active assignees and the task creator, minus the actor
		recipients := assigneeStaffIDs(assignees)
		recipients = append(recipients, task.CreatorID)
		a.notify.CommentAdded(c.Request.Context(), task, &comment, recipients, staff.ID)
	}

	c.JSON(http.StatusCreated, comment)
}

// DeleteComment handles DELETE /api/comments/:id
// Only the author or an admin may delete; deletion is soft.
func (a *API) DeleteComment(c *gin.Context) {
	staff, ok := a.currentStaff(c)
	if !ok {
		return
	}
	commentID := c.Param("id")

	var comment models.Comment
	if err := database.GetDB().Where("id = ?", commentID).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comment"})
		}
		return
	}

	if comment.StaffID != staff.ID && staff.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete this comment"})
		return
	}

	if err := database.GetDB().Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
		"id":      commentID,
	})
}
