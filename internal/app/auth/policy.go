package auth

import (
	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/pkg/apperrors"
)

// Action is something a principal may attempt on a resource type
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionManage Action = "manage"
)

// Resource is a protected resource type
type Resource string

const (
	ResourceVideo Resource = "video"
	ResourceNote  Resource = "note"
	ResourceQuiz  Resource = "quiz"
	ResourceUser  Resource = "user"
)

// Actions and Resources enumerate the closed sets the policy is defined over
var (
	Actions   = []Action{ActionRead, ActionCreate, ActionManage}
	Resources = []Resource{ResourceVideo, ResourceNote, ResourceQuiz, ResourceUser}
)

func (a Action) valid() bool {
	switch a {
	case ActionRead, ActionCreate, ActionManage:
		return true
	}
	return false
}

func (r Resource) isContent() bool {
	switch r {
	case ResourceVideo, ResourceNote, ResourceQuiz:
		return true
	}
	return false
}

func (r Resource) valid() bool {
	return r.isContent() || r == ResourceUser
}

// Allowed is the raw policy table lookup.
//
//	student  read on video, note, quiz
//	faculty  read and create on video, note, quiz
//	admin    everything
//
// Unknown roles, actions or resources are never allowed.
func Allowed(role models.Role, action Action, resource Resource) bool {
	if !action.valid() || !resource.valid() {
		return false
	}

	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleFaculty:
		return resource.isContent() && (action == ActionRead || action == ActionCreate)
	case models.RoleStudent:
		return resource.isContent() && action == ActionRead
	default:
		return false
	}
}

// Check returns nil when role may perform action on resource and a
// permission-denied error otherwise. The message never names the resource
// instance, so a denial does not reveal whether it exists.
func Check(role models.Role, action Action, resource Resource) error {
	if Allowed(role, action, resource) {
		return nil
	}
	return apperrors.NewForbiddenError("you do not have permission to perform this action")
}
