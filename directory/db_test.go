package directory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/utils"
)

func newTestDBDirectory(t *testing.T) *DBUserDirectory {
	t.Helper()
	dm, err := core.New(t.TempDir(), "", 1)
	require.NoError(t, err)
	t.Cleanup(func() { dm.Close() })

	d := NewDBUserDirectory(dm)
	require.NoError(t, d.EnsureSchema(t.Context()))
	return d
}

func TestDBUserDirectoryRoundTrip(t *testing.T) {
	d := newTestDBDirectory(t)
	ctx := t.Context()

	require.NoError(t, d.Save(ctx, &model.Employee{
		ID:          "1001",
		DisplayName: "Ana Torres",
		Role:        "admin",
		Password:    "changeme",
		Email:       utils.Ptr("ana@example.com"),
		StartDate:   utils.Ptr(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)),
		Attributes:  datatypes.JSON(`{"team":"ops","badge":42}`),
	}))

	got, err := d.FindByID("1001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana Torres", got.DisplayName)
	assert.Equal(t, "ana@example.com", *got.Email)
	assert.Contains(t, string(got.Attributes), `"team":"ops"`)

	missing, err := d.FindByID("9999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDBUserDirectorySaveRequiresID(t *testing.T) {
	d := newTestDBDirectory(t)
	assert.Error(t, d.Save(t.Context(), &model.Employee{DisplayName: "no id"}))
}

func TestDBUserDirectoryEndedEmployee(t *testing.T) {
	d := newTestDBDirectory(t)
	ctx := t.Context()

	require.NoError(t, d.Save(ctx, &model.Employee{
		ID:       "2001",
		Role:     "employee",
		Password: "changeme",
		EndDate:  utils.Ptr(time.Now().AddDate(0, -1, 0)),
	}))
	require.NoError(t, d.Save(ctx, &model.Employee{
		ID:       "2002",
		Role:     "employee",
		Password: "changeme",
	}))

	// Ended employees stay listed but cannot log in or be looked up.
	all, err := d.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.False(t, all[0].Active())
	assert.True(t, all[1].Active())

	got, err := d.FindByID("2001")
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err := d.Authenticate("2001", "changeme")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = d.Authenticate("2002", "changeme")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDBUserDirectoryAuthenticateWrongPassword(t *testing.T) {
	d := newTestDBDirectory(t)
	require.NoError(t, d.Save(t.Context(), &model.Employee{ID: "3001", Role: "employee", Password: "right"}))

	ok, err := d.Authenticate("3001", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}
