package pgsql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListVideosByOwner_OrdersAndPages(t *testing.T) {
	repos, mock := newMockRepos(t)

	rows := pgxmock.NewRows(videoOwnerColumns)
	addVideoOwnerRow(rows, "v-1", "popular", 40)
	addVideoOwnerRow(rows, "v-2", "quiet", 2)
	mock.ExpectQuery(sqlPattern("WHERE v.owner_id = $1 ORDER BY v.views DESC, v.video_id LIMIT $2 OFFSET $3")).
		WithArgs("owner-1", 2, 4).
		WillReturnRows(rows)

	videos, err := repos.VideoRepo.ListVideosByOwner(context.Background(), portsrepo.VideoListQuery{
		OwnerID:    "owner-1",
		SortBy:     domain.VideoSortViews,
		Descending: true,
		Limit:      2,
		Offset:     4,
	})
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "v-1", videos[0].VideoID)
	assert.Equal(t, "owner", videos[0].Owner.Username)
}

func TestListVideosByOwner_UnknownSortFallsBackToCreatedAt(t *testing.T) {
	repos, mock := newMockRepos(t)

	mock.ExpectQuery(sqlPattern("ORDER BY v.created_at ASC, v.video_id")).
		WithArgs("owner-1", 10, 0).
		WillReturnRows(pgxmock.NewRows(videoOwnerColumns))

	videos, err := repos.VideoRepo.ListVideosByOwner(context.Background(), portsrepo.VideoListQuery{
		OwnerID: "owner-1",
		SortBy:  domain.VideoSortField("password_hash"),
		Offset:  -3,
	})
	require.NoError(t, err)
	assert.NotNil(t, videos)
	assert.Empty(t, videos)
}

func TestFindVideoWithOwnerByID_NotFound(t *testing.T) {
	repos, mock := newMockRepos(t)

	mock.ExpectQuery(sqlPattern("FROM videos v JOIN users o ON o.user_id = v.owner_id WHERE v.video_id = $1")).
		WithArgs("v-404").
		WillReturnError(pgx.ErrNoRows)

	_, err := repos.VideoRepo.FindVideoWithOwnerByID(context.Background(), "v-404")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteVideo_ClearsHistoryFirst(t *testing.T) {
	repos, mock := newMockRepos(t)

	mock.ExpectBegin()
	mock.ExpectExec(sqlPattern("DELETE FROM watch_history WHERE video_id = $1")).
		WithArgs("v-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(sqlPattern("DELETE FROM videos WHERE video_id = $1")).
		WithArgs("v-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, repos.VideoRepo.DeleteVideo(context.Background(), "v-1"))
}

func TestDeleteVideo_MissingRollsBack(t *testing.T) {
	repos, mock := newMockRepos(t)

	mock.ExpectBegin()
	mock.ExpectExec(sqlPattern("DELETE FROM watch_history")).
		WithArgs("v-404").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(sqlPattern("DELETE FROM videos")).
		WithArgs("v-404").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err := repos.VideoRepo.DeleteVideo(context.Background(), "v-404")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRecordView_IncrementsAndAppends(t *testing.T) {
	repos, mock := newMockRepos(t)

	mock.ExpectBegin()
	mock.ExpectExec(sqlPattern("UPDATE videos SET views = views + 1 WHERE video_id = $1")).
		WithArgs("v-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(sqlPattern("INSERT INTO watch_history (user_id, video_id, watched_at) VALUES ($1, $2, NOW())")).
		WithArgs("viewer-1", "v-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repos.VideoRepo.RecordView(context.Background(), "v-1", "viewer-1"))
}

func TestRecordView_HistoryFailureRollsBack(t *testing.T) {
	repos, mock := newMockRepos(t)

	mock.ExpectBegin()
	mock.ExpectExec(sqlPattern("UPDATE videos SET views = views + 1")).
		WithArgs("v-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(sqlPattern("INSERT INTO watch_history")).
		WithArgs("viewer-1", "v-1").
		WillReturnError(errors.New("foreign key violation"))
	mock.ExpectRollback()

	err := repos.VideoRepo.RecordView(context.Background(), "v-1", "viewer-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to append watch history")
}
