// Package visibility resolves which staff members a requester may see or
// act on, derived from the department hierarchy and the requester's role.
package visibility

import (
	"time"

	"gorm.io/gorm"

	"teamtask-api/internal/cache"
	"teamtask-api/internal/models"
)

// Resolver computes visible-staff sets. Department closures change rarely,
// so results are cached per staff member with a TTL.
type Resolver struct {
	db    *gorm.DB
	cache *cache.TTLCache[uint, []uint]
	ttl   time.Duration
}

// NewResolver constructs a Resolver. ttl <= 0 disables expiry.
func NewResolver(db *gorm.DB, ttl time.Duration) *Resolver {
	return &Resolver{
		db:    db,
		cache: cache.New[uint, []uint](),
		ttl:   ttl,
	}
}

// Invalidate drops the cached sets; call after staff or department changes.
func (r *Resolver) Invalidate() {
	r.cache.Clear()
}

// VisibleDepartments returns the department ids the requester may see:
// admins see all departments, managers see the subtree rooted at their own
// department, staff see only their own.
func (r *Resolver) VisibleDepartments(requester *models.Staff) ([]uint, error) {
	var departments []models.Department
	if err := r.db.Find(&departments).Error; err != nil {
		return nil, err
	}

	if requester.Role == models.RoleAdmin {
		ids := make([]uint, 0, len(departments))
		for _, d := range departments {
			ids = append(ids, d.ID)
		}
		return ids, nil
	}

	if requester.Role == models.RoleStaff {
		return []uint{requester.DepartmentID}, nil
	}

	// manager: breadth-first walk over the child relation
	children := make(map[uint][]uint, len(departments))
	for _, d := range departments {
		if d.ParentID != nil {
			children[*d.ParentID] = append(children[*d.ParentID], d.ID)
		}
	}
	visible := []uint{requester.DepartmentID}
	queue := []uint{requester.DepartmentID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range children[cur] {
			visible = append(visible, child)
			queue = append(queue, child)
		}
	}
	return visible, nil
}

// VisibleStaff returns the ids of staff members the requester may see.
func (r *Resolver) VisibleStaff(requester *models.Staff) ([]uint, error) {
	if ids, ok := r.cache.Get(requester.ID); ok {
		return ids, nil
	}

	departments, err := r.VisibleDepartments(requester)
	if err != nil {
		return nil, err
	}
	var ids []uint
	if err := r.db.Model(&models.Staff{}).
		Where("department_id IN ?", departments).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	r.cache.Set(requester.ID, ids, r.ttl)
	return ids, nil
}

// TaskVisibleTo reports whether the requester may see a task: its creator,
// one of its assignees, an admin, or anyone whose visible departments
// overlap an assignee's department.
func (r *Resolver) TaskVisibleTo(requester *models.Staff, task *models.Task, assignees []models.TaskAssignee) (bool, error) {
	if requester.Role == models.RoleAdmin || task.CreatorID == requester.ID {
		return true, nil
	}
	assigneeIDs := make([]uint, 0, len(assignees))
	for _, a := range assignees {
		if a.AssignedToStaffID == requester.ID {
			return true, nil
		}
		assigneeIDs = append(assigneeIDs, a.AssignedToStaffID)
	}
	if len(assigneeIDs) == 0 {
		return false, nil
	}

	visible, err := r.VisibleStaff(requester)
	if err != nil {
		return false, err
	}
	visibleSet := make(map[uint]struct{}, len(visible))
	for _, id := range visible {
		visibleSet[id] = struct{}{}
	}
	for _, id := range assigneeIDs {
		if _, ok := visibleSet[id]; ok {
			return true, nil
		}
	}
	return false, nil
}
