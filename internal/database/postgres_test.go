package database

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/salesboard/internal/models"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db, DialectPostgres), mock
}

func TestPostgres_UpdateRequestStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE requests SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs("on hold", sqlmock.AnyArg(), "r-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateRequestStatus(context.Background(), "r-1", models.StatusOnHold))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateRequestStatus_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE requests SET status = $1")).
		WithArgs("done", sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRequestStatus(context.Background(), "missing", models.StatusDone)
	assert.ErrorIs(t, err, models.ErrRequestNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_IsAdmin(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM user_roles WHERE user_id = $1 AND role = $2")).
		WithArgs("u-1", RoleAdmin).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	admin, err := repo.IsAdmin(context.Background(), "u-1")
	require.NoError(t, err)
	assert.True(t, admin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListRequestsScoped(t *testing.T) {
	repo, mock := newMockRepo(t)

	cols := []string{
		"id", "title", "description", "request_type", "status",
		"city_id", "city_name", "state_code", "requester_id", "requester_name",
		"created_by", "creator_name", "company", "volume", "need_answer_by", "delivery_date",
		"created_on_behalf", "created_at", "updated_at", "comments_count",
	}
	rows := sqlmock.NewRows(cols).AddRow(
		"r-1", "Lunch", "", "EVENT", "ongoing",
		"austin", "Austin", "TX", "u-1", "",
		"u-1", "Alex", "Acme", nil, nil, nil,
		false, base, base, 3,
	)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.created_by = $1 OR r.requester_id = $2")).
		WithArgs("u-1", "u-1", "u-1").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE ra.request_id IN ($1)")).
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows([]string{"request_id", "user_id", "display_name"}).AddRow("r-1", "u-2", "Blake"))

	list, err := repo.ListRequests(context.Background(), RequestScope{UserID: "u-1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.StatusOnProgress, list[0].Status)
	assert.Equal(t, models.DefaultRequesterName, list[0].RequesterName)
	assert.Equal(t, 3, list[0].CommentsCount)
	assert.Equal(t, []models.BDR{{ID: "u-2", Name: "Blake"}}, list[0].AssignedBDRs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CreateCommentRollsBackOnMentionFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO request_comments")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO comment_mentions (comment_id, mentioned_user_id) VALUES ($1, $2)")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.CreateComment(context.Background(), &models.Comment{
		RequestID: "r-1", UserID: "u-1", Content: "hi @Blake",
		Mentions: []models.Mention{{UserID: "u-2"}},
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
