package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finebook/finebook/internal/domain"
)

func TestFineTemplate_Lifecycle(t *testing.T) {
	f := newFixture(t)
	admin := f.team("t1", "admin")
	maxCount := 3
	tmpl := domain.FineTemplate{
		ID:         "late",
		Reason:     "Late to training",
		Amount:     domain.NewAmount(1, 0),
		Importance: domain.ImportanceLow,
		Counts:     &domain.TemplateCounts{Unit: domain.CountUnitMinute, MaxCount: &maxCount},
	}

	_, err := f.uc.UpdateFineTemplate(f.ctx, admin, "t1", tmpl)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.uc.AddFineTemplate(f.ctx, admin, "t1", tmpl)
	require.NoError(t, err)
	_, err = f.uc.AddFineTemplate(f.ctx, admin, "t1", tmpl)
	require.ErrorIs(t, err, ErrAlreadyExists)

	tmpl.Amount = domain.NewAmount(2, 50)
	_, err = f.uc.UpdateFineTemplate(f.ctx, admin, "t1", tmpl)
	require.NoError(t, err)
	got, err := f.repo.GetFineTemplate(f.ctx, "t1", "late")
	require.NoError(t, err)
	assert.Equal(t, domain.Amount(250), got.Amount)

	require.NoError(t, f.uc.DeleteFineTemplate(f.ctx, admin, "t1", "late"))
	require.ErrorIs(t, f.uc.DeleteFineTemplate(f.ctx, admin, "t1", "late"), ErrNotFound)
}

func TestFineTemplate_Validation(t *testing.T) {
	f := newFixture(t)
	admin := f.team("t1", "admin")
	_, err := f.uc.AddFineTemplate(f.ctx, admin, "t1", domain.FineTemplate{ID: "x", Reason: "r", Importance: "huge"})
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, KindInvalidArgument, KindOf(err))
}

func TestFineTemplate_RequiresRole(t *testing.T) {
	f := newFixture(t)
	f.team("t1", "admin")
	id := f.member("t1", "a", domain.RoleFineManager)
	err := f.uc.DeleteFineTemplate(f.ctx, id, "t1", "late")
	require.ErrorIs(t, err, ErrPermissionDenied)
}
