package services

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"class-quest-system/models"
)

func TestCurrentLevel(t *testing.T) {
	levels := []models.Level{
		{ID: 1, Name: "Novice", XPRequired: 0},
		{ID: 2, Name: "Apprentice", XPRequired: 100},
		{ID: 3, Name: "Master", XPRequired: 500},
	}

	tests := []struct {
		name   string
		levels []models.Level
		xp     int64
		want   *uint
	}{
		{"between thresholds", levels, 250, uintPtr(2)},
		{"below second threshold", levels, 50, uintPtr(1)},
		{"exactly on threshold", levels, 500, uintPtr(3)},
		{"zero xp with zero threshold", levels, 0, uintPtr(1)},
		{"empty catalog", nil, 1000, nil},
		{"all thresholds above xp", []models.Level{{ID: 9, XPRequired: 10}}, 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentLevel(tt.levels, tt.xp)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, got.ID)
		})
	}
}

func uintPtr(v uint) *uint { return &v }

func expectGrant(mock sqlmock.Sqlmock, ok bool) {
	mock.ExpectBegin()
	exec := mock.ExpectExec(`UPDATE "users" SET`)
	if !ok {
		exec.WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()
		return
	}
	exec.WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "xp_transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()
}

func TestApplyXPSingleStudent(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewProgressionService(db)

	mock.ExpectBegin()
	// The watermark is folded into the same UPDATE, against post-update xp.
	mock.ExpectExec(`UPDATE "users" SET .*GREATEST\(highest_xp, xp \+ \$\d+\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "xp_transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	id := uint(7)
	updated, failures, err := svc.ApplyXP(XPTarget{StudentID: &id}, 25, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{7}, updated)
	assert.Empty(t, failures)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyXPMissionRewardOverridesAmount(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewProgressionService(db)

	missionID := uint(5)
	mock.ExpectQuery(`SELECT \* FROM "missions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "xp_reward"}).
			AddRow(5, "Solve the riddle", 20))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "xp_transactions"`).
		WithArgs(7, int64(20), 5, "mission_5", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	id := uint(7)
	// Caller-supplied amount of 999 must be ignored for mission grants.
	updated, failures, err := svc.ApplyXP(XPTarget{StudentID: &id}, 999, &missionID)
	require.NoError(t, err)
	assert.Equal(t, []uint{7}, updated)
	assert.Empty(t, failures)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyXPMissionMissingIsFatal(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewProgressionService(db)

	missionID := uint(404)
	mock.ExpectQuery(`SELECT \* FROM "missions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	id := uint(7)
	updated, failures, err := svc.ApplyXP(XPTarget{StudentID: &id}, 0, &missionID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, updated)
	assert.Empty(t, failures)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyXPClassFansOutToMembers(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewProgressionService(db)

	mock.ExpectQuery(`SELECT \* FROM "classes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "5b"))
	mock.ExpectQuery(`SELECT "id" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))

	expectGrant(mock, true)
	expectGrant(mock, true)

	classID := uint(3)
	updated, failures, err := svc.ApplyXP(XPTarget{ClassID: &classID}, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, updated)
	assert.Empty(t, failures)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyXPClassMissingIsFatal(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewProgressionService(db)

	mock.ExpectQuery(`SELECT \* FROM "classes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	classID := uint(99)
	_, _, err := svc.ApplyXP(XPTarget{ClassID: &classID}, 20, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyXPBatchIsolatesFailures(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewProgressionService(db)

	// First target does not exist, second must still be updated.
	expectGrant(mock, false)
	expectGrant(mock, true)

	updated, failures, err := svc.ApplyXP(XPTarget{StudentIDs: []uint{8, 9}}, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{9}, updated)
	require.Len(t, failures, 1)
	assert.Equal(t, uint(8), failures[0].StudentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyXPEmptyTarget(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewProgressionService(db)

	_, _, err := svc.ApplyXP(XPTarget{}, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
