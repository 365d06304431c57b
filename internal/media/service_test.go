package media

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/db"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/pagination"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := db.NewTestClient(t)
	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)
	return svc, client
}

func seedMedia(t *testing.T, client *db.Client, title, description string, genres ...models.Genre) models.Media {
	t.Helper()
	m := models.Media{
		Title:          title,
		Description:    description,
		Duration:       "00:45:00",
		ReleaseDate:    time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC),
		Classification: enums.ClassificationPG,
		Type:           enums.MediaTypeMovie,
		Genres:         genres,
	}
	require.NoError(t, client.DB().Create(&m).Error)
	return m
}

func TestSearchMedia(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	thriller := models.Genre{Name: "Thriller"}
	require.NoError(t, client.DB().Create(&thriller).Error)

	byTitle := seedMedia(t, client, "The Night Train", "A journey")
	byDesc := seedMedia(t, client, "Quiet", "Somewhere a NIGHT falls")
	byGenre := seedMedia(t, client, "Edge", "Cliffhanger", thriller)
	seedMedia(t, client, "Sunny Day", "Picnic")

	res, err := svc.SearchMedia(ctx, "night", 0)
	require.NoError(t, err)
	require.Equal(t, 2, res.Count)
	assert.Equal(t, byTitle.ID, res.Results[0].ID)
	assert.Equal(t, byDesc.ID, res.Results[1].ID)

	res, err = svc.SearchMedia(ctx, "THRILL", 10)
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, byGenre.ID, res.Results[0].ID)
	require.Len(t, res.Results[0].Genres, 1)

	res, err = svc.SearchMedia(ctx, "%", 10)
	require.NoError(t, err)
	assert.Zero(t, res.Count)

	_, err = svc.SearchMedia(ctx, "  ", 10)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestSearchMediaIsBounded(t *testing.T) {
	svc, client := newTestService(t)
	test := models.Genre{Name: "Test Genre"}
	require.NoError(t, client.DB().Create(&test).Error)
	for i := 0; i < 8; i++ {
		seedMedia(t, client, fmt.Sprintf("Test %d", i), "test", test)
	}

	res, err := svc.SearchMedia(context.Background(), "test", 5)
	require.NoError(t, err)
	require.Len(t, res.Results, 5)
	require.Equal(t, 5, res.Count)
}

func TestListMediaPagination(t *testing.T) {
	svc, client := newTestService(t)
	for i := 0; i < 45; i++ {
		seedMedia(t, client, fmt.Sprintf("Title %02d", i), "")
	}

	res, err := svc.ListMedia(context.Background(), pagination.Params{})
	require.NoError(t, err)
	require.Len(t, res.Items, pagination.DefaultLimit)
	assert.Equal(t, 1, res.Pagination.Page)
	assert.Equal(t, 20, res.Pagination.Limit)
	assert.Equal(t, int64(45), res.Pagination.Total)
	assert.Equal(t, int(math.Ceil(45.0/20.0)), res.Pagination.Pages)

	last, err := svc.ListMedia(context.Background(), pagination.Params{Page: 3, Limit: 20})
	require.NoError(t, err)
	require.Len(t, last.Items, 5)
}

func TestGetMediaAndSubtitles(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	drama := models.Genre{Name: "Drama"}
	require.NoError(t, client.DB().Create(&drama).Error)
	m := seedMedia(t, client, "Film", "desc", drama)
	require.NoError(t, client.DB().Create(&[]models.Subtitle{
		{MediaID: m.ID, Language: "nl", FilePath: "/subs/film.nl.vtt"},
		{MediaID: m.ID, Language: "en", FilePath: "/subs/film.en.vtt"},
	}).Error)

	got, err := svc.GetMedia(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, got.Genres, 1)
	require.Len(t, got.Subtitles, 2)
	assert.Equal(t, "en", got.Subtitles[0].Language)

	subs, err := svc.ListSubtitles(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, subs, 2)

	_, err = svc.GetMedia(ctx, m.ID+1)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	_, err = svc.ListSubtitles(ctx, m.ID+1)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestSeriesAndGenres(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	series := models.Series{Title: "Saga"}
	require.NoError(t, client.DB().Create(&series).Error)
	s2 := models.Season{SeriesID: series.ID, SeasonNumber: 2}
	s1 := models.Season{SeriesID: series.ID, SeasonNumber: 1}
	require.NoError(t, client.DB().Create(&s2).Error)
	require.NoError(t, client.DB().Create(&s1).Error)
	for _, ep := range []int{2, 1} {
		n := ep
		require.NoError(t, client.DB().Create(&models.Media{
			SeasonID:       &s1.ID,
			EpisodeNumber:  &n,
			Title:          fmt.Sprintf("S1E%d", n),
			Duration:       "00:30:00",
			ReleaseDate:    time.Date(2022, 1, n, 0, 0, 0, 0, time.UTC),
			Classification: enums.ClassificationG,
			Type:           enums.MediaTypeEpisode,
		}).Error)
	}
	require.NoError(t, client.DB().Create(&models.Genre{Name: "Comedy"}).Error)
	require.NoError(t, client.DB().Create(&models.Genre{Name: "Action"}).Error)

	list, err := svc.ListSeries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := svc.GetSeries(ctx, series.ID)
	require.NoError(t, err)
	require.Len(t, got.Seasons, 2)
	assert.Equal(t, 1, got.Seasons[0].SeasonNumber)
	require.Len(t, got.Seasons[0].Episodes, 2)
	assert.Equal(t, "S1E1", got.Seasons[0].Episodes[0].Title)

	_, err = svc.GetSeries(ctx, series.ID+1)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	genres, err := svc.ListGenres(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "Action", genres[0].Name)
}
