package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamtask-api/internal/database"
	"teamtask-api/internal/models"
)

// StaffResponse is the safe staff payload returned by the API.
type StaffResponse struct {
	ID           uint        `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
	DepartmentID uint        `json:"department_id"`
}

// GetStaff handles GET /api/staff
// Returns the staff members visible to the requester per the department
// hierarchy.
func (a *API) GetStaff(c *gin.Context) {
	staff, ok := a.currentStaff(c)
	if !ok {
		return
	}

	visible, err := a.vis.VisibleStaff(staff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve visible staff"})
		return
	}

	var members []models.Staff
	if err := database.GetDB().Where("id IN ?", visible).Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff"})
		return
	}

	resp := make([]StaffResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, StaffResponse{
			ID:           m.ID,
			Name:         m.Name,
			Email:        m.Email,
			Role:         m.Role,
			DepartmentID: m.DepartmentID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"staff": resp,
		"count": len(resp),
	})
}
