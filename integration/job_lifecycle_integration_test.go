package jobmarket_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmarket/internal/job"
	"jobmarket/internal/reputation"
	"jobmarket/internal/wallet"
)

func createOpenJob(t *testing.T, repo job.Repository, clientID int) *job.Job {
	j, err := repo.Create(context.Background(), clientID, job.CreateJobRequest{
		Category:      "Plumbing",
		Address:       "123 Main St",
		Description:   "Fix the kitchen sink",
		PriceEstimate: 100000,
	})
	require.NoError(t, err)
	require.Equal(t, job.StatusOpen, j.Status)
	return j
}

func TestConcurrentClaims_ExactlyOneWins_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)

	repo := job.NewRepository(db)
	clientID := createTestAccount(t, db, "client@test.com", "Client", "client")
	j := createOpenJob(t, repo, clientID)

	const n = 12
	specialists := make([]int, n)
	for i := 0; i < n; i++ {
		specialists[i] = createTestAccount(t, db,
			fmt.Sprintf("spec%d@test.com", i), fmt.Sprintf("Specialist %d", i), "specialist")
	}

	var wg sync.WaitGroup
	results := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(specialistID int) {
			defer wg.Done()
			_, err := repo.Claim(context.Background(), j.ID, specialistID)
			results <- err
		}(specialists[i])
	}
	wg.Wait()
	close(results)

	var successes, losses int
	for err := range results {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, job.ErrInvalidState)
			losses++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, losses)

	claimed, err := repo.GetByID(context.Background(), j.ID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusInProgress, claimed.Status)
	require.NotNil(t, claimed.SpecialistID)
}

func TestJobLifecycle_CompleteAndPayout_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)

	ctx := context.Background()
	jobRepo := job.NewRepository(db)
	walletRepo := wallet.NewRepository(db)

	clientID := createTestAccount(t, db, "client@test.com", "Client", "client")
	specialistID := createTestAccount(t, db, "spec@test.com", "Specialist", "specialist")
	platformID := createTestAccount(t, db, "platform@test.com", "Platform", "admin")
	walletService := wallet.NewService(walletRepo, platformID)

	j := createOpenJob(t, jobRepo, clientID)

	_, err := jobRepo.Claim(ctx, j.ID, specialistID)
	require.NoError(t, err)

	// Specialist must complete; the client cannot.
	_, err = jobRepo.Complete(ctx, j.ID, clientID)
	require.ErrorIs(t, err, job.ErrUnauthorized)

	completed, err := jobRepo.Complete(ctx, j.ID, specialistID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusCompleted, completed.Status)

	// A second complete is rejected.
	_, err = jobRepo.Complete(ctx, j.ID, specialistID)
	require.ErrorIs(t, err, job.ErrInvalidState)

	// 10% commission split: 90000 to the specialist, 10000 to the platform.
	require.NoError(t, walletService.PayoutForJob(ctx, specialistID, completed.PriceEstimate, "job completed"))

	specialistBalance, err := walletRepo.GetBalance(ctx, specialistID)
	require.NoError(t, err)
	assert.Equal(t, int64(90000), specialistBalance)

	platformBalance, err := walletRepo.GetBalance(ctx, platformID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), platformBalance)

	// Ledger invariant: stored balance equals the sum of transactions.
	sum, err := walletRepo.SumTransactions(ctx, specialistID)
	require.NoError(t, err)
	assert.Equal(t, specialistBalance, sum)
}

func TestReviewFlow_OnePerJob_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)

	ctx := context.Background()
	jobRepo := job.NewRepository(db)
	reviewRepo := reputation.NewRepository(db)

	clientID := createTestAccount(t, db, "client@test.com", "Client", "client")
	specialistID := createTestAccount(t, db, "spec@test.com", "Specialist", "specialist")

	j := createOpenJob(t, jobRepo, clientID)
	_, err := jobRepo.Claim(ctx, j.ID, specialistID)
	require.NoError(t, err)

	// No review before completion.
	_, err = reviewRepo.SubmitReview(ctx, j.ID, clientID, reputation.SubmitReviewRequest{Rating: 5})
	require.ErrorIs(t, err, job.ErrInvalidState)

	_, err = jobRepo.Complete(ctx, j.ID, specialistID)
	require.NoError(t, err)

	// Only the client reviews.
	_, err = reviewRepo.SubmitReview(ctx, j.ID, specialistID, reputation.SubmitReviewRequest{Rating: 5})
	require.ErrorIs(t, err, job.ErrUnauthorized)

	review, err := reviewRepo.SubmitReview(ctx, j.ID, clientID, reputation.SubmitReviewRequest{Rating: 4, Comment: "Solid work"})
	require.NoError(t, err)
	assert.Equal(t, specialistID, review.SpecialistID)

	// Second review for the same job is rejected.
	_, err = reviewRepo.SubmitReview(ctx, j.ID, clientID, reputation.SubmitReviewRequest{Rating: 1})
	require.ErrorIs(t, err, reputation.ErrAlreadyReviewed)

	avg, count, err := reviewRepo.ReviewStats(ctx, specialistID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.InDelta(t, 4.0, avg, 0.001)
}
