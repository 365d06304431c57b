package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
)

func TestClassifyPostgresCodes(t *testing.T) {
	cases := map[string]Violation{
		"23505": ViolationUnique,
		"23503": ViolationForeignKey,
		"23514": ViolationInvalidData,
		"22P02": ViolationInvalidData,
		"P0002": ViolationNotFound,
		"40001": ViolationNone,
	}
	for code, want := range cases {
		assert.Equal(t, want, Classify(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: code})), code)
		assert.Equal(t, want, Classify(&pq.Error{Code: pq.ErrorCode(code)}), code)
	}
	assert.Equal(t, ViolationNotFound, Classify(gorm.ErrRecordNotFound))
	assert.Equal(t, ViolationNone, Classify(nil))
}

func TestClassifySQLiteConstraintErrors(t *testing.T) {
	client := NewTestClient(t)
	conn := client.DB()

	user := models.User{Email: "dup@example.com", PasswordHash: "x", Role: enums.UserRoleUser, Status: enums.UserStatusActive, ReferralCode: "DUP1"}
	require.NoError(t, conn.Create(&user).Error)

	dup := models.User{Email: "dup@example.com", PasswordHash: "x", Role: enums.UserRoleUser, Status: enums.UserStatusActive, ReferralCode: "DUP2"}
	err := conn.Create(&dup).Error
	require.Error(t, err)
	assert.Equal(t, ViolationUnique, Classify(err))
	assert.True(t, IsUniqueViolation(err, ""))

	orphan := models.Profile{UserID: 9999, Name: "ghost", Age: 20, ContentClassification: enums.ClassificationPG, Language: "en"}
	err = conn.Create(&orphan).Error
	require.Error(t, err)
	assert.Equal(t, ViolationForeignKey, Classify(err))
}

func TestIsUniqueViolationMatchesConstraint(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "watch_list_profile_media_key"}
	assert.True(t, IsUniqueViolation(err, "watch_list_profile_media_key"))
	assert.False(t, IsUniqueViolation(err, "profiles_user_name_key"))
	assert.False(t, IsUniqueViolation(errors.New("plain"), ""))
}

func TestMapError(t *testing.T) {
	msgs := ErrorMessages{NotFound: "media not found", Conflict: "media already in watch list", ForeignKeyCode: pkgerrors.CodeNotFound, ForeignKey: "profile or media not found"}

	mapped := pkgerrors.As(MapError(&pgconn.PgError{Code: "23505"}, msgs))
	require.NotNil(t, mapped)
	assert.Equal(t, pkgerrors.CodeConflict, mapped.Code())
	assert.Equal(t, "media already in watch list", mapped.Message())

	mapped = pkgerrors.As(MapError(&pgconn.PgError{Code: "23503"}, msgs))
	require.NotNil(t, mapped)
	assert.Equal(t, pkgerrors.CodeNotFound, mapped.Code())

	mapped = pkgerrors.As(MapError(&pgconn.PgError{Code: "23503"}, ErrorMessages{}))
	require.NotNil(t, mapped)
	assert.Equal(t, pkgerrors.CodeConflict, mapped.Code())

	mapped = pkgerrors.As(MapError(&pgconn.PgError{Code: "22P02"}, msgs))
	require.NotNil(t, mapped)
	assert.Equal(t, pkgerrors.CodeUnprocessable, mapped.Code())

	mapped = pkgerrors.As(MapError(errors.New("connection reset"), msgs))
	require.NotNil(t, mapped)
	assert.Equal(t, pkgerrors.CodeInternal, mapped.Code())

	typed := pkgerrors.New(pkgerrors.CodeForbidden, "nope")
	assert.Same(t, typed, MapError(typed, msgs))
	assert.NoError(t, MapError(nil, msgs))
}
