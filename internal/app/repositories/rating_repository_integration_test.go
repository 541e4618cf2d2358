//go:build integration

package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trungle/unidocs/internal/app/models"
	"github.com/trungle/unidocs/internal/pkg/apperrors"
)

func TestUpsertRating_RecomputesDocumentAggregates(t *testing.T) {
	pool := startTestDatabase(t)
	ratings := NewRatingRepository(pool)
	documents := NewDocumentRepository(pool)
	ctx := context.Background()

	uploader := seedUser(t, pool, "uploader@example.edu")
	alice := seedUser(t, pool, "alice@example.edu")
	bob := seedUser(t, pool, "bob@example.edu")
	docID := seedDocument(t, pool, uploader, "Calculus Notes", models.StatusApproved)

	// First rating: average 5.0, count 1
	_, created, err := ratings.UpsertRating(ctx, &models.Rating{DocumentID: docID, UserID: alice, Score: 5})
	assert.NoError(t, err)
	assert.True(t, created)

	doc, err := documents.GetDocumentByID(ctx, docID)
	assert.NoError(t, err)
	assert.Equal(t, 5.0, doc.AverageRating)
	assert.Equal(t, 1, doc.RatingCount)

	// Second rater: (5+3)/2 = 4.0, count 2
	_, created, err = ratings.UpsertRating(ctx, &models.Rating{DocumentID: docID, UserID: bob, Score: 3})
	assert.NoError(t, err)
	assert.True(t, created)

	doc, err = documents.GetDocumentByID(ctx, docID)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, doc.AverageRating)
	assert.Equal(t, 2, doc.RatingCount)

	// Overwrite, not a new row: (1+3)/2 = 2.0, count stays 2
	_, created, err = ratings.UpsertRating(ctx, &models.Rating{DocumentID: docID, UserID: alice, Score: 1})
	assert.NoError(t, err)
	assert.False(t, created)

	doc, err = documents.GetDocumentByID(ctx, docID)
	assert.NoError(t, err)
	assert.Equal(t, 2.0, doc.AverageRating)
	assert.Equal(t, 2, doc.RatingCount)
}

func TestUpsertRating_AverageRoundsToOneDecimal(t *testing.T) {
	pool := startTestDatabase(t)
	ratings := NewRatingRepository(pool)
	documents := NewDocumentRepository(pool)
	ctx := context.Background()

	uploader := seedUser(t, pool, "uploader@example.edu")
	docID := seedDocument(t, pool, uploader, "Physics Summary", models.StatusApproved)

	scores := []int{5, 4, 4} // mean 4.333... -> 4.3
	for i, score := range scores {
		rater := seedUser(t, pool, fmt.Sprintf("rater%d@example.edu", i))
		_, _, err := ratings.UpsertRating(ctx, &models.Rating{DocumentID: docID, UserID: rater, Score: score})
		assert.NoError(t, err)
	}

	doc, err := documents.GetDocumentByID(ctx, docID)
	assert.NoError(t, err)
	assert.Equal(t, 4.3, doc.AverageRating)
	assert.Equal(t, 3, doc.RatingCount)
}

func TestDeleteRating_ZeroesAggregatesWhenLastRatingRemoved(t *testing.T) {
	pool := startTestDatabase(t)
	ratings := NewRatingRepository(pool)
	documents := NewDocumentRepository(pool)
	ctx := context.Background()

	uploader := seedUser(t, pool, "uploader@example.edu")
	alice := seedUser(t, pool, "alice@example.edu")
	bob := seedUser(t, pool, "bob@example.edu")
	docID := seedDocument(t, pool, uploader, "Linear Algebra Notes", models.StatusApproved)

	aliceRating, _, err := ratings.UpsertRating(ctx, &models.Rating{DocumentID: docID, UserID: alice, Score: 5})
	assert.NoError(t, err)
	bobRating, _, err := ratings.UpsertRating(ctx, &models.Rating{DocumentID: docID, UserID: bob, Score: 3})
	assert.NoError(t, err)

	ownerDocID, err := ratings.DeleteRating(ctx, aliceRating.ID)
	assert.NoError(t, err)
	assert.Equal(t, docID, ownerDocID)

	doc, err := documents.GetDocumentByID(ctx, docID)
	assert.NoError(t, err)
	assert.Equal(t, 3.0, doc.AverageRating)
	assert.Equal(t, 1, doc.RatingCount)

	// Removing the last rating resets both aggregates to zero
	_, err = ratings.DeleteRating(ctx, bobRating.ID)
	assert.NoError(t, err)

	doc, err = documents.GetDocumentByID(ctx, docID)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, doc.AverageRating)
	assert.Equal(t, 0, doc.RatingCount)

	_, err = ratings.DeleteRating(ctx, bobRating.ID)
	assert.ErrorIs(t, err, apperrors.ErrRatingNotFound)
}

func TestUpsertRating_OverwriteMovesRatingToTopOfList(t *testing.T) {
	pool := startTestDatabase(t)
	ratings := NewRatingRepository(pool)
	ctx := context.Background()

	uploader := seedUser(t, pool, "uploader@example.edu")
	alice := seedUser(t, pool, "alice@example.edu")
	bob := seedUser(t, pool, "bob@example.edu")
	docID := seedDocument(t, pool, uploader, "Statistics Cheatsheet", models.StatusApproved)

	_, _, err := ratings.UpsertRating(ctx, &models.Rating{DocumentID: docID, UserID: alice, Score: 4})
	assert.NoError(t, err)
	_, _, err = ratings.UpsertRating(ctx, &models.Rating{DocumentID: docID, UserID: bob, Score: 5})
	assert.NoError(t, err)

	list, _, err := ratings.GetRatingsByDocumentID(ctx, docID, 1, 10)
	assert.NoError(t, err)
	if assert.Len(t, list, 2) {
		assert.Equal(t, bob, list[0].UserID)
	}

	// Overwriting resets created_at, so the updated rating sorts first again
	_, _, err = ratings.UpsertRating(ctx, &models.Rating{DocumentID: docID, UserID: alice, Score: 2})
	assert.NoError(t, err)

	list, _, err = ratings.GetRatingsByDocumentID(ctx, docID, 1, 10)
	assert.NoError(t, err)
	if assert.Len(t, list, 2) {
		assert.Equal(t, alice, list[0].UserID)
		assert.Equal(t, 2, list[0].Score)
	}
}
