package api

import (
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/salesboard/internal/board"
	"github.com/thenoetrevino/salesboard/internal/models"
)

func TestIssueAndParseToken(t *testing.T) {
	secret := []byte("s3cret")

	tok, err := IssueToken(secret, "u-1", true, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.True(t, claims.AppMetadata.IsSuperAdmin)
}

func TestParseToken_Expired(t *testing.T) {
	secret := []byte("s3cret")

	tok, err := IssueToken(secret, "u-1", false, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1"},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = ParseToken([]byte("s3cret"), tok)
	assert.Error(t, err)
}

func TestParseToken_RequiresSubject(t *testing.T) {
	tok, err := IssueToken([]byte("s3cret"), "", false, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken([]byte("s3cret"), tok)
	assert.Error(t, err)
}

func TestToken_NoSecret(t *testing.T) {
	_, err := IssueToken(nil, "u-1", false, time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = ParseToken(nil, "x")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestParseFilter(t *testing.T) {
	q := url.Values{
		"q":      {"pho"},
		"type":   {"event,cuisine"},
		"status": {"done", "on_hold"},
		"from":   {"2026-03-01"},
		"to":     {"2026-03-02"},
		"sort":   {"title"},
		"dir":    {"ASC"},
	}

	f, err := ParseFilter(q)
	require.NoError(t, err)

	assert.Equal(t, "pho", f.Search)
	assert.Equal(t, []models.RequestType{models.RequestTypeEvent, models.RequestTypeCuisine}, f.Types)
	assert.Equal(t, []models.Status{models.StatusDone, models.StatusOnHold}, f.Statuses)
	assert.Equal(t, board.SortTitle, f.SortBy)
	assert.True(t, f.Ascending)
	require.NotNil(t, f.DateFrom)
	require.NotNil(t, f.DateTo)
	assert.Equal(t, time.Date(2026, 3, 2, 23, 59, 59, 999999999, time.UTC), *f.DateTo)
}

func TestParseFilter_Defaults(t *testing.T) {
	f, err := ParseFilter(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, board.SortCreatedAt, f.SortBy)
	assert.False(t, f.Ascending)
	assert.Nil(t, f.DateFrom)
}

func TestParseFilter_Errors(t *testing.T) {
	_, err := ParseFilter(url.Values{"type": {"party"}})
	assert.Error(t, err)

	_, err = ParseFilter(url.Values{"status": {"archived"}})
	assert.Error(t, err)

	_, err = ParseFilter(url.Values{"to": {"03/02/2026"}})
	assert.Error(t, err)
}
