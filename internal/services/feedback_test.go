package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackAverages(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	_, err := AverageRating(ctx, db, "")
	assert.ErrorIs(t, err, ErrNotFound)

	for _, body := range []string{
		`{"userID": 1, "productID": "P1", "rating": 5, "comment": "great fit"}`,
		`{"userID": "2", "productID": "P1", "rating": "4"}`,
		`{"userID": 2, "productID": "P2", "rating": 4}`,
	} {
		_, err := CreateFeedback(ctx, db, decode[FeedbackInput](t, body))
		require.NoError(t, err, body)
	}

	all, err := AverageRating(ctx, db, "")
	require.NoError(t, err)
	assert.Equal(t, 4.33, all.Average)
	assert.Equal(t, 3, all.Count)

	p1, err := AverageRating(ctx, db, "P1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, p1.Average)

	_, err = AverageRating(ctx, db, "P9")
	assert.ErrorIs(t, err, ErrNotFound)

	mine, err := FeedbackByUser(ctx, db, 2)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	forP2, err := FeedbackByProduct(ctx, db, "P2")
	require.NoError(t, err)
	require.Len(t, forP2, 1)
	assert.Equal(t, 4, forP2[0].Rating)
}

func TestFeedbackRatingRange(t *testing.T) {
	db := newTestDB(t)
	for _, body := range []string{
		`{"userID": 1, "rating": 0}`,
		`{"userID": 1, "rating": "6"}`,
		`{"userID": 1}`,
		`{"rating": 3}`,
	} {
		_, err := CreateFeedback(context.Background(), db, decode[FeedbackInput](t, body))
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, body)
	}
}

func TestFeedbackUpdateDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	fb, err := CreateFeedback(ctx, db, decode[FeedbackInput](t, `{"userID": 3, "rating": 2, "comment": "too small"}`))
	require.NoError(t, err)
	assert.Equal(t, uint(1), fb.FeedbackID)

	upd, err := UpdateFeedback(ctx, db, fb.ID, decode[FeedbackInput](t, `{"rating": 4, "comment": "exchanged, fits now"}`))
	require.NoError(t, err)
	assert.Equal(t, 4, upd.Rating)
	assert.Equal(t, uint(3), upd.UserID)

	_, err = UpdateFeedback(ctx, db, "64b7f0c2a1b2c3d4e5f60718", decode[FeedbackInput](t, `{"rating": 4}`))
	assert.ErrorIs(t, err, ErrNotFound)

	var verr *ValidationError
	assert.ErrorAs(t, DeleteFeedback(ctx, db, "abc"), &verr)
	require.NoError(t, DeleteFeedback(ctx, db, fb.ID))
	assert.ErrorIs(t, DeleteFeedback(ctx, db, fb.ID), ErrNotFound)
}
