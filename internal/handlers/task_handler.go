package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"teamtask-api/internal/database"
	"teamtask-api/internal/models"
	"teamtask-api/internal/tasks"
)

// UpdateTaskRequest represents the request payload for updating a task
type UpdateTaskRequest struct {
	Title     *string            `json:"title"`
	Notes     *string            `json:"notes"`
	StartDate *string            `json:"start_date"`
	DueDate   *string            `json:"due_date"`
	Status    *models.TaskStatus `json:"status"`
	Priority  *int               `json:"priority"`
	Tags      []string           `json:"tags"`
	ProjectID *string            `json:"project_id"`
}

// UpdateTaskStatusRequest represents a minimal request to change status
type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

/*
*
GetTasks handles GET /api/tasks
Returns top-level tasks visible to the requester.
Query params: page (default 1), limit (default 20), sort (asc|desc on
created_at), project_id, status.
*/
func (a *API) GetTasks(c *gin.Context) {
	staff, ok := a.currentStaff(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	order := "created_at desc"
	if strings.ToLower(c.DefaultQuery("sort", "desc")) == "asc" {
		order = "created_at asc"
	}

	visible, err := a.vis.VisibleStaff(staff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve visible staff"})
		return
	}

	db := database.GetDB()
	assignedTaskIDs := db.Table("task_assignees").
		Select("task_id").
		Where("assigned_to_staff_id IN ? AND is_active = ?", visible, true)

	query := db.Model(&models.Task{}).
		Where("parent_task_id IS NULL").
		Where("creator_id = ? OR id IN (?)", staff.ID, assignedTaskIDs)
	if projectID := c.Query("project_id"); projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count tasks"})
		return
	}

	var taskRows []models.Task
	if err := query.Session(&gorm.Session{}).Order(order).Limit(limit).Offset(offset).Find(&taskRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	ids := make([]string, 0, len(taskRows))
	for _, t := range taskRows {
		ids = append(ids, t.ID)
	}
	if grouped, err := loadAssignees(ids); err == nil {
		for i := range taskRows {
			taskRows[i].Assignees = grouped[taskRows[i].ID]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": taskRows,
		"count": len(taskRows),
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

/*
*
CreateTask handles POST /api/tasks
Runs the creation workflow: validation, parent + assignee + subtask writes
with compensating rollback, then best-effort notifications.
*/
func (a *API) CreateTask(c *gin.Context) {
	staff, ok := a.currentStaff(c)
	if !ok {
		return
	}

	var req tasks.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ProjectID != nil && *req.ProjectID != "" {
		var project models.Project
		if err := database.GetDB().Where("id = ?", *req.ProjectID).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate project"})
			}
			return
		}
	}

	res, err := a.tasks.Create(c.Request.Context(), staff.ID, req)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"task":     res.Task,
		"subtasks": res.Subtasks,
	})
}

// GetTaskByID handles GET /api/tasks/:id
// Returns the task with its assignees and subtasks, subject to visibility.
func (a *API) GetTaskByID(c *gin.Context) {
	staff, ok := a.currentStaff(c)
	if !ok {
		return
	}
	taskID := c.Param("id")

	task, assignees, ok := a.visibleTask(c, staff, taskID)
	if !ok {
		return
	}
	task.Assignees = assignees

	var subtasks []models.Task
	if err := database.GetDB().Where("parent_task_id = ?", task.ID).Find(&subtasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subtasks"})
		return
	}
	subIDs := make([]string, 0, len(subtasks))
	for _, s := range subtasks {
		subIDs = append(subIDs, s.ID)
	}
	if grouped, err := loadAssignees(subIDs); err == nil {
		for i := range subtasks {
			subtasks[i].Assignees = grouped[subtasks[i].ID]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"task":     task,
		"subtasks": subtasks,
	})
}

// UpdateTask handles PUT /api/tasks/:id
func (a *API) UpdateTask(c *gin.Context) {
	staff, ok := a.currentStaff(c)
	if !ok {
		return
	}
	taskID := c.Param("id")

	task, assignees, ok := a.visibleTask(c, staff, taskID)
	if !ok {
		return
	}
	if !canModifyTask(staff, task, assignees) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to modify this task"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Notes != nil {
		task.Notes = *req.Notes
	}
	if req.StartDate != nil {
		task.StartDate = tasks.ParseDate(*req.StartDate)
	}
	if req.DueDate != nil {
		task.DueDate = tasks.ParseDate(*req.DueDate)
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
			return
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if *req.Priority < 1 || *req.Priority > 10 {
			task.Priority = nil
		} else {
			task.Priority = req.Priority
		}
	}
	if req.Tags != nil {
		task.Tags = req.Tags
	}
	if req.ProjectID != nil {
		if *req.ProjectID == "" {
			task.ProjectID = nil
		} else {
			task.ProjectID = req.ProjectID
		}
	}

	if err := database.GetDB().Save(task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}
	task.Assignees = assignees

	if a.notify != nil {
		a.notify.TaskUpdated(c.Request.Context(), task, assigneeStaffIDs(assignees), staff.ID)
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus handles PATCH /api/tasks/:id/status
func (a *API) UpdateTaskStatus(c *gin.Context) {
	staff, ok := a.currentStaff(c)
	if !ok {
		return
	}
	taskID := c.Param("id")

	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	task, assignees, ok := a.visibleTask(c, staff, taskID)
	if !ok {
		return
	}
	if !canModifyTask(staff, task, assignees) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to modify this task"})
		return
	}

	task.Status = req.Status
	if err := database.GetDB().Model(task).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}
	task.Assignees = assignees

	if a.notify != nil {
		a.notify.TaskUpdated(c.Request.Context(), task, assigneeStaffIDs(assignees), staff.ID)
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id
// Soft-deletes the task; the row keeps its deleted_at marker.
func (a *API) DeleteTask(c *gin.Context) {
	staff, ok := a.currentStaff(c)
	if !ok {
		return
	}
	taskID := c.Param("id")

	task, assignees, ok := a.visibleTask(c, staff, taskID)
	if !ok {
		return
	}
	if !canModifyTask(staff, task, assignees) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete this task"})
		return
	}

	if err := database.GetDB().Delete(task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	if a.notify != nil {
		a.notify.TaskDeleted(c.Request.Context(), task, assigneeStaffIDs(assignees), staff.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      taskID,
	})
}

// visibleTask loads a task and its assignees and enforces visibility,
// answering 404/403/500 on its own.
func (a *API) visibleTask(c *gin.Context, staff *models.Staff, taskID string) (*models.Task, []models.TaskAssignee, bool) {
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID is required"})
		return nil, nil, false
	}
	var task models.Task
	if err := database.GetDB().Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return nil, nil, false
	}

	var assignees []models.TaskAssignee
	if err := database.GetDB().Where("task_id = ?", task.ID).Find(&assignees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignees"})
		return nil, nil, false
	}

	visible, err := a.vis.TaskVisibleTo(staff, &task, assignees)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check task visibility"})
		return nil, nil, false
	}
	if !visible {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to view this task"})
		return nil, nil, false
	}
	return &task, assignees, true
}
