package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"class-quest-system/services"
	"class-quest-system/utils"
)

func newAdminTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	storage, err := utils.NewR2Storage(utils.R2Config{})
	require.NoError(t, err)

	app := fiber.New()
	SetupAdminRoutes(app, db,
		services.NewUserService(db),
		services.NewCatalogService(db),
		services.NewProgressionService(db),
		services.NewUploadService(db, storage),
	)
	return app, mock
}

// expectAdminLookup satisfies the auth middleware's user load for X-User-ID 1.
func expectAdminLookup(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}).
			AddRow(1, "root", "admin"))
}

func TestGrantXPStudent(t *testing.T) {
	app, mock := newAdminTestApp(t)
	expectAdminLookup(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "xp_transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	req := httptest.NewRequest("POST", "/api/admin/xp/student",
		strings.NewReader(`{"student_id":7,"amount":25}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Updated []uint `json:"updated"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []uint{7}, body.Updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantXPStudentRequiresAmount(t *testing.T) {
	app, mock := newAdminTestApp(t)
	expectAdminLookup(mock)

	req := httptest.NewRequest("POST", "/api/admin/xp/student",
		strings.NewReader(`{"student_id":7}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	// No grant may run when the amount is omitted.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantXPClassRequiresAmount(t *testing.T) {
	app, mock := newAdminTestApp(t)
	expectAdminLookup(mock)

	req := httptest.NewRequest("POST", "/api/admin/xp/class",
		strings.NewReader(`{"class_id":3}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantXPRejectsNonAdmin(t *testing.T) {
	app, mock := newAdminTestApp(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}).
			AddRow(7, "mia", "student"))

	req := httptest.NewRequest("POST", "/api/admin/xp/student",
		strings.NewReader(`{"student_id":7,"amount":25}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
