package profiles

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/db"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
)

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }

func newTestService(t *testing.T) (Service, *db.Client, uint) {
	t.Helper()
	client := db.NewTestClient(t)
	user := models.User{Email: "owner@example.com", PasswordHash: "x", ReferralCode: "OWNER001"}
	require.NoError(t, client.DB().Create(&user).Error)

	svc, err := NewService(ServiceParams{Repo: NewRepository(client.DB()), DB: client})
	require.NoError(t, err)
	return svc, client, user.ID
}

func TestCreateProfile(t *testing.T) {
	svc, client, userID := newTestService(t)
	ctx := context.Background()

	profile, err := svc.CreateProfile(ctx, userID, CreateProfileRequest{
		Name:      strPtr(" Kid "),
		Age:       intPtr(9),
		Autoplay:  boolPtr(false),
		Subtitles: boolPtr(true),
	})
	require.NoError(t, err)
	require.NotZero(t, profile.ID)
	require.Equal(t, "Kid", profile.Name)
	require.Equal(t, enums.ClassificationPG, profile.ContentClassification)
	require.Equal(t, defaultLanguage, profile.Language)
	require.False(t, profile.Autoplay)
	require.True(t, profile.Subtitles)

	var stored models.Profile
	require.NoError(t, client.DB().First(&stored, profile.ID).Error)
	require.False(t, stored.Autoplay)
	require.True(t, stored.Subtitles)

	_, err = svc.CreateProfile(ctx, userID, CreateProfileRequest{Name: strPtr("Kid"), Age: intPtr(10)})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	_, err = svc.CreateProfile(ctx, userID, CreateProfileRequest{
		Name:                  strPtr("Adult"),
		Age:                   intPtr(30),
		ContentClassification: "XXX",
	})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnprocessable))

	adult, err := svc.CreateProfile(ctx, userID, CreateProfileRequest{
		Name:                  strPtr("Adult"),
		Age:                   intPtr(30),
		ContentClassification: "PG-13",
	})
	require.NoError(t, err)
	require.Equal(t, enums.ClassificationPG13, adult.ContentClassification)

	count, err := svc.CountProfiles(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	list, err := svc.ListProfiles(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, profile.ID, list[0].ID)
}

func TestCreateProfileUnknownUser(t *testing.T) {
	svc, _, userID := newTestService(t)
	_, err := svc.CreateProfile(context.Background(), userID+99, CreateProfileRequest{Name: strPtr("Ghost"), Age: intPtr(20)})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestUpdateProfile(t *testing.T) {
	svc, _, userID := newTestService(t)
	ctx := context.Background()

	profile, err := svc.CreateProfile(ctx, userID, CreateProfileRequest{Name: strPtr("Main"), Age: intPtr(40)})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, profile.ID, UpdateProfileRequest{
		Name:                  strPtr("Renamed"),
		ContentClassification: strPtr("R"),
		Autoplay:              boolPtr(false),
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, enums.ClassificationR, updated.ContentClassification)
	require.False(t, updated.Autoplay)
	require.Equal(t, 40, updated.Age)

	_, err = svc.UpdateProfile(ctx, profile.ID, UpdateProfileRequest{ContentClassification: strPtr("bogus")})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnprocessable))

	_, err = svc.UpdateProfile(ctx, profile.ID+50, UpdateProfileRequest{Name: strPtr("x")})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.UpdateProfile(ctx, profile.ID+50, UpdateProfileRequest{})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestDeleteProfile(t *testing.T) {
	svc, client, userID := newTestService(t)
	ctx := context.Background()

	free, err := svc.CreateProfile(ctx, userID, CreateProfileRequest{Name: strPtr("Free"), Age: intPtr(20)})
	require.NoError(t, err)
	busy, err := svc.CreateProfile(ctx, userID, CreateProfileRequest{Name: strPtr("Busy"), Age: intPtr(20)})
	require.NoError(t, err)

	media := models.Media{
		Title:          "Film",
		Duration:       "01:30:00",
		ReleaseDate:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Classification: enums.ClassificationPG,
		Type:           enums.MediaTypeMovie,
	}
	require.NoError(t, client.DB().Create(&media).Error)
	require.NoError(t, client.DB().Create(&models.WatchHistory{
		ProfileID: busy.ID,
		MediaID:   media.ID,
		Progress:  10,
		WatchedAt: time.Now(),
	}).Error)

	require.NoError(t, svc.DeleteProfile(ctx, free.ID))
	_, err = svc.FindProfile(ctx, free.ID)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	err = svc.DeleteProfile(ctx, busy.ID)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	err = svc.DeleteProfile(ctx, free.ID)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
