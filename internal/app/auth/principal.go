package auth

import (
	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/pkg/apperrors"
)

// Principal is the authenticated caller of a request. It is resolved once
// by the auth middleware and passed to services as an explicit argument.
type Principal struct {
	UserID string      `json:"id"`
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
}

// Can applies the policy to the principal's role
func (p *Principal) Can(action Action, resource Resource) error {
	if p == nil {
		return apperrors.ErrUnauthenticated
	}
	return Check(p.Role, action, resource)
}

// IsAdmin reports whether the principal holds the admin role
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

// SeesAnswers reports whether quiz answer keys are visible to the principal
func (p *Principal) SeesAnswers() bool {
	return p.Can(ActionCreate, ResourceQuiz) == nil
}
