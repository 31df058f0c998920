package services

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name", "password", "role"}).
			AddRow(7, "mia", string(hash), "student")
	}

	t.Run("correct password", func(t *testing.T) {
		db, mock := newTestDB(t)
		svc := NewUserService(db)

		mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows())

		user, err := svc.Authenticate("mia", "secret")
		require.NoError(t, err)
		assert.Equal(t, uint(7), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		db, mock := newTestDB(t)
		svc := NewUserService(db)

		mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows())

		_, err := svc.Authenticate("mia", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		db, mock := newTestDB(t)
		svc := NewUserService(db)

		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := svc.Authenticate("ghost", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("blank credentials", func(t *testing.T) {
		db, _ := newTestDB(t)
		svc := NewUserService(db)

		_, err := svc.Authenticate("", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCreateStudentClassMustExist(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewUserService(db)

	mock.ExpectQuery(`SELECT \* FROM "classes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	classID := uint(99)
	_, err := svc.CreateStudent("mia", "secret", &classID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureAdminSkipsWhenAdminExists(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewUserService(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	require.NoError(t, svc.EnsureAdmin("root", "secret"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureAdminNoopOnBlankCredentials(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewUserService(db)

	require.NoError(t, svc.EnsureAdmin("", ""))
	assert.NoError(t, mock.ExpectationsWereMet())
}
