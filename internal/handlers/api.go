package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teamtask-api/internal/apperror"
	"teamtask-api/internal/database"
	"teamtask-api/internal/middleware"
	"teamtask-api/internal/models"
	"teamtask-api/internal/notify"
	"teamtask-api/internal/realtime"
	"teamtask-api/internal/tasks"
	"teamtask-api/internal/visibility"
)

// API bundles the services the handlers depend on.
type API struct {
	log    *zap.Logger
	tasks  *tasks.Service
	notify *notify.Dispatcher
	vis    *visibility.Resolver
	hub    *realtime.Hub
}

// New constructs the handler set.
func New(log *zap.Logger, taskSvc *tasks.Service, dispatcher *notify.Dispatcher, resolver *visibility.Resolver, hub *realtime.Hub) *API {
	if log == nil {
		log = zap.NewNop()
	}
	return &API{log: log, tasks: taskSvc, notify: dispatcher, vis: resolver, hub: hub}
}

// currentStaff loads the authenticated staff member set by the JWT
// middleware; replies 401 and returns false when missing.
func (a *API) currentStaff(c *gin.Context) (*models.Staff, bool) {
	staffID := c.GetUint(middleware.CtxStaffID)
	if staffID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Staff ID not found in token"})
		return nil, false
	}
	var staff models.Staff
	if err := database.GetDB().First(&staff, staffID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Staff member not found"})
		return nil, false
	}
	return &staff, true
}

// respondError translates a service error into the standard error body.
func (a *API) respondError(c *gin.Context, err error) {
	status := apperror.Status(err)
	body := gin.H{"error": apperror.Message(err)}
	if status == http.StatusInternalServerError {
		if data := apperror.Data(err); data != "" {
			body["data"] = data
		}
	}
	c.JSON(status, body)
}

// loadAssignees fetches the active-and-inactive assignee rows for a set of
// task ids in one query, grouped by task.
func loadAssignees(taskIDs []string) (map[string][]models.TaskAssignee, error) {
	grouped := make(map[string][]models.TaskAssignee, len(taskIDs))
	if len(taskIDs) == 0 {
		return grouped, nil
	}
	var rows []models.TaskAssignee
	if err := database.GetDB().Where("task_id IN ?", taskIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		grouped[row.TaskID] = append(grouped[row.TaskID], row)
	}
	return grouped, nil
}

func assigneeStaffIDs(rows []models.TaskAssignee) []uint {
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		if row.IsActive {
			ids = append(ids, row.AssignedToStaffID)
		}
	}
	return ids
}

// canModifyTask reports whether staff may mutate the task: creator,
// assignee, or admin.
func canModifyTask(staff *models.Staff, task *models.Task, assignees []models.TaskAssignee) bool {
	if staff.Role == models.RoleAdmin || task.CreatorID == staff.ID {
		return true
	}
	for _, row := range assignees {
		if row.AssignedToStaffID == staff.ID {
			return true
		}
	}
	return false
}
