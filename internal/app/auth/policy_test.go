package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/pkg/apperrors"
)

func TestCheck_Table(t *testing.T) {
	type grant struct {
		action   Action
		resource Resource
	}
	allowed := map[models.Role]map[grant]bool{
		models.RoleStudent: {
			{ActionRead, ResourceVideo}: true,
			{ActionRead, ResourceNote}:  true,
			{ActionRead, ResourceQuiz}:  true,
		},
		models.RoleFaculty: {
			{ActionRead, ResourceVideo}:   true,
			{ActionRead, ResourceNote}:    true,
			{ActionRead, ResourceQuiz}:    true,
			{ActionCreate, ResourceVideo}: true,
			{ActionCreate, ResourceNote}:  true,
			{ActionCreate, ResourceQuiz}:  true,
		},
	}

	for _, role := range models.Roles {
		for _, action := range Actions {
			for _, resource := range Resources {
				want := role == models.RoleAdmin || allowed[role][grant{action, resource}]
				err := Check(role, action, resource)
				if want {
					assert.NoError(t, err, "%s %s %s", role, action, resource)
				} else {
					assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied), "%s %s %s", role, action, resource)
				}
			}
		}
	}
}

func TestCheck_StudentNeverWrites(t *testing.T) {
	for _, resource := range Resources {
		assert.Error(t, Check(models.RoleStudent, ActionCreate, resource))
		assert.Error(t, Check(models.RoleStudent, ActionManage, resource))
	}
}

func TestCheck_OnlyAdminManagesUsers(t *testing.T) {
	for _, role := range models.Roles {
		for _, action := range Actions {
			err := Check(role, action, ResourceUser)
			if role == models.RoleAdmin {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err, "%s must not %s users", role, action)
			}
		}
	}
}

func TestCheck_UnknownValuesDenied(t *testing.T) {
	assert.Error(t, Check("superuser", ActionRead, ResourceVideo))
	assert.Error(t, Check("", ActionRead, ResourceVideo))
	assert.Error(t, Check(models.RoleAdmin, "delete", ResourceVideo))
	assert.Error(t, Check(models.RoleAdmin, ActionRead, "grades"))
}

func TestPrincipal(t *testing.T) {
	var nobody *Principal
	assert.ErrorIs(t, nobody.Can(ActionRead, ResourceVideo), apperrors.ErrUnauthenticated)
	assert.False(t, nobody.IsAdmin())

	student := &Principal{UserID: "s", Role: models.RoleStudent}
	faculty := &Principal{UserID: "f", Role: models.RoleFaculty}
	admin := &Principal{UserID: "a", Role: models.RoleAdmin}

	assert.False(t, student.SeesAnswers())
	assert.True(t, faculty.SeesAnswers())
	assert.True(t, admin.SeesAnswers())
	assert.True(t, admin.IsAdmin())
	assert.False(t, faculty.IsAdmin())
}
