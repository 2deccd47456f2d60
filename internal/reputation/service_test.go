package reputation

import (
	"context"
	"testing"

	"jobmarket/internal/account"
	"jobmarket/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Init()
}

type MockReviewRepo struct{ mock.Mock }

func (m *MockReviewRepo) SubmitReview(ctx context.Context, jobID, clientID int, req SubmitReviewRequest) (*Review, error) {
	args := m.Called(ctx, jobID, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *MockReviewRepo) ListBySpecialist(ctx context.Context, specialistID int) ([]Review, error) {
	args := m.Called(ctx, specialistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Review), args.Error(1)
}

func (m *MockReviewRepo) ReviewStats(ctx context.Context, specialistID int) (float64, int, error) {
	args := m.Called(ctx, specialistID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

type stubAccounts struct {
	account.Repository
	accounts map[int]*account.Account
}

func (s *stubAccounts) FindByID(ctx context.Context, id int) (*account.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return a, nil
}

func newSummaryService(repo Repository) Service {
	return NewService(repo, &stubAccounts{accounts: map[int]*account.Account{
		20: {ID: 20, FullName: "Anna Tran", Role: account.RoleSpecialist, JobsCompleted: 35},
		21: {ID: 21, FullName: "Minh Vo", Role: account.RoleSpecialist, JobsCompleted: 0},
		10: {ID: 10, FullName: "Client One", Role: account.RoleClient},
	}})
}

func TestSummaryFor_RankAndAverage(t *testing.T) {
	repo := new(MockReviewRepo)
	svc := newSummaryService(repo)
	ctx := context.Background()

	repo.On("ReviewStats", ctx, 20).Return(4.2, 18, nil)

	summary, err := svc.SummaryFor(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, TierElite, summary.Rank)
	assert.Equal(t, 35, summary.JobsCompleted)
	assert.InDelta(t, 4.2, summary.ReviewAverage, 0.001)
	assert.Equal(t, 18, summary.ReviewCount)
}

func TestSummaryFor_NoReviewsShowsFiveStars(t *testing.T) {
	repo := new(MockReviewRepo)
	svc := newSummaryService(repo)
	ctx := context.Background()

	repo.On("ReviewStats", ctx, 21).Return(0.0, 0, nil)

	summary, err := svc.SummaryFor(ctx, 21)
	require.NoError(t, err)
	assert.Equal(t, TierNew, summary.Rank)
	assert.InDelta(t, 5.0, summary.ReviewAverage, 0.001)
	assert.Zero(t, summary.ReviewCount)
}

func TestSummaryFor_ClientIsNotASpecialist(t *testing.T) {
	svc := newSummaryService(new(MockReviewRepo))

	_, err := svc.SummaryFor(context.Background(), 10)
	assert.ErrorIs(t, err, account.ErrNotSpecialist)
}

func TestSummaryFor_UnknownAccount(t *testing.T) {
	svc := newSummaryService(new(MockReviewRepo))

	_, err := svc.SummaryFor(context.Background(), 999)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestSubmitReview_DelegatesToRepository(t *testing.T) {
	repo := new(MockReviewRepo)
	svc := newSummaryService(repo)
	ctx := context.Background()

	req := SubmitReviewRequest{Rating: 5, Comment: "On time and tidy"}
	repo.On("SubmitReview", ctx, 1, 10, req).
		Return(&Review{ID: 1, JobID: 1, SpecialistID: 20, Rating: 5, Comment: "On time and tidy"}, nil)

	review, err := svc.SubmitReview(ctx, 1, 10, req)
	require.NoError(t, err)
	assert.Equal(t, 1, review.JobID)
	repo.AssertExpectations(t)
}
