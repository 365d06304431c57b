package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/db"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
)

type stubRevoker struct {
	calls []uint
	err   error
	sawTx bool
}

func (s *stubRevoker) RevokeAllForUser(_ context.Context, tx *gorm.DB, userID uint, _ time.Time) error {
	s.calls = append(s.calls, userID)
	s.sawTx = tx != nil
	return s.err
}

func newTestService(t *testing.T, revoker tokenRevoker) (*service, *Repository) {
	t.Helper()
	client := db.NewTestClient(t)
	repo := NewRepository(client.DB())
	svc, err := NewService(ServiceParams{Repo: repo, DB: client, Revoker: revoker})
	require.NoError(t, err)
	return svc.(*service), repo
}

func TestNewServiceRequiresDeps(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestGetMe(t *testing.T) {
	svc, repo := newTestService(t, &stubRevoker{})
	ctx := context.Background()

	user, err := repo.Create(ctx, CreateUserDTO{Email: "a@example.com", PasswordHash: "x", ReferralCode: "REF00001"})
	require.NoError(t, err)

	dto, err := svc.GetMe(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "a@example.com", dto.Email)
	require.Equal(t, enums.UserRoleUser, dto.Role)

	_, err = svc.GetMe(ctx, user.ID+100)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestDeleteMeSoftDeletesAndRevokes(t *testing.T) {
	revoker := &stubRevoker{}
	svc, repo := newTestService(t, revoker)
	ctx := context.Background()

	user, err := repo.Create(ctx, CreateUserDTO{Email: "b@example.com", PasswordHash: "x", ReferralCode: "REF00002"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMe(ctx, user.ID))
	require.Equal(t, []uint{user.ID}, revoker.calls)
	require.True(t, revoker.sawTx)

	_, err = svc.GetMe(ctx, user.ID)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	err = svc.DeleteMe(ctx, user.ID)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestDeleteMeRollsBackWhenRevokeFails(t *testing.T) {
	revoker := &stubRevoker{err: gorm.ErrInvalidDB}
	svc, repo := newTestService(t, revoker)
	ctx := context.Background()

	user, err := repo.Create(ctx, CreateUserDTO{Email: "c@example.com", PasswordHash: "x", ReferralCode: "REF00003"})
	require.NoError(t, err)

	require.Error(t, svc.DeleteMe(ctx, user.ID))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.Nil(t, found.DeletedAt)
}
