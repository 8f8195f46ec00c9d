package appointment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestVisibleScope(t *testing.T) {
	me := uuid.New()
	mine := &models.Appointment{DentistID: me}
	theirs := &models.Appointment{DentistID: uuid.New()}

	cases := []struct {
		role       Role
		seesMine   bool
		seesTheirs bool
	}{
		{RoleAdmin, true, true},
		{RoleReceptionist, true, true},
		{RoleDentist, true, false},
		{Role("patient"), false, false},
		{Role(""), false, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			s := VisibleScope(Caller{ID: me, Role: tc.role})
			assert.Equal(t, tc.seesMine, s.Allows(mine))
			assert.Equal(t, tc.seesTheirs, s.Allows(theirs))
			assert.Equal(t, !tc.seesMine, s.Empty())
		})
	}
}

func TestAuthorize(t *testing.T) {
	me := uuid.New()
	theirs := &models.Appointment{DentistID: uuid.New()}

	assert.ErrorIs(t, Authorize(Caller{ID: me, Role: RoleDentist}, theirs), ErrForbidden)
	assert.NoError(t, Authorize(Caller{ID: me, Role: RoleAdmin}, theirs))
	assert.ErrorIs(t, AuthorizeDentist(Caller{ID: me, Role: "nurse"}, me), ErrForbidden)
}

func TestScope_Filter(t *testing.T) {
	me := uuid.New()
	aps := []models.Appointment{
		{ID: uuid.New(), DentistID: me},
		{ID: uuid.New(), DentistID: uuid.New()},
		{ID: uuid.New(), DentistID: me},
	}

	got := VisibleScope(Caller{ID: me, Role: RoleDentist}).Filter(aps)

	assert.Len(t, got, 2)
	for _, ap := range got {
		assert.Equal(t, me, ap.DentistID)
	}
	assert.Len(t, VisibleScope(Caller{Role: RoleAdmin}).Filter(aps), 3)
}
