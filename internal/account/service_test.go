package account

import (
	"context"
	"testing"

	"jobmarket/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAccountRepo struct{ mock.Mock }

func (m *MockAccountRepo) Create(ctx context.Context, email, passwordHash, fullName, role string) (*Account, error) {
	args := m.Called(ctx, email, passwordHash, fullName, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *MockAccountRepo) FindByEmail(ctx context.Context, email string) (*Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *MockAccountRepo) FindByID(ctx context.Context, id int) (*Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *MockAccountRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepo) UpdateProfile(ctx context.Context, id int, req UpdateProfileRequest) (*Account, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *MockAccountRepo) SubmitVerification(ctx context.Context, id int, frontURL, backURL string) error {
	return m.Called(ctx, id, frontURL, backURL).Error(0)
}

func (m *MockAccountRepo) SetVerificationStatus(ctx context.Context, id int, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockAccountRepo) PromoteToAdmin(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccountRepo) ListPendingVerification(ctx context.Context) ([]Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Account), args.Error(1)
}

func (m *MockAccountRepo) ListSpecialists(ctx context.Context) ([]Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Account), args.Error(1)
}

func TestRegister_Success(t *testing.T) {
	repo := new(MockAccountRepo)
	svc := NewService(repo, "test-secret")
	ctx := context.Background()

	repo.On("EmailExists", ctx, "new@example.com").Return(false, nil)
	repo.On("Create", ctx, "new@example.com", mock.AnythingOfType("string"), "New Client", RoleClient).
		Return(&Account{ID: 1, Email: "new@example.com", FullName: "New Client", Role: RoleClient}, nil)

	account, accessToken, refreshToken, err := svc.Register(ctx, RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
		FullName: "New Client",
		Role:     RoleClient,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, account.ID)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	repo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := new(MockAccountRepo)
	svc := NewService(repo, "test-secret")
	ctx := context.Background()

	repo.On("EmailExists", ctx, "taken@example.com").Return(true, nil)

	_, _, _, err := svc.Register(ctx, RegisterRequest{
		Email:    "taken@example.com",
		Password: "password123",
		FullName: "Someone",
		Role:     RoleSpecialist,
	})

	assert.ErrorIs(t, err, ErrEmailExists)
	repo.AssertNotCalled(t, "Create")
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockAccountRepo)
	svc := NewService(repo, "test-secret")
	ctx := context.Background()

	hash, _ := auth.HashPassword("correct-password")
	repo.On("FindByEmail", ctx, "c@example.com").
		Return(&Account{ID: 1, Email: "c@example.com", PasswordHash: hash, Role: RoleClient}, nil)

	_, _, _, err := svc.Login(ctx, LoginRequest{Email: "c@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockAccountRepo)
	svc := NewService(repo, "test-secret")
	ctx := context.Background()

	hash, _ := auth.HashPassword("correct-password")
	repo.On("FindByEmail", ctx, "c@example.com").
		Return(&Account{ID: 1, Email: "c@example.com", PasswordHash: hash, Role: RoleClient}, nil)

	account, accessToken, _, err := svc.Login(ctx, LoginRequest{Email: "c@example.com", Password: "correct-password"})
	require.NoError(t, err)
	assert.Equal(t, 1, account.ID)
	assert.NotEmpty(t, accessToken)
}

func TestSubmitVerification_OnlySpecialists(t *testing.T) {
	repo := new(MockAccountRepo)
	svc := NewService(repo, "test-secret")
	ctx := context.Background()

	repo.On("FindByID", ctx, 2).Return(&Account{ID: 2, Role: RoleClient}, nil)

	err := svc.SubmitVerification(ctx, 2, SubmitVerificationRequest{
		FrontURL: "https://cdn.example.com/f.jpg",
		BackURL:  "https://cdn.example.com/b.jpg",
	})

	assert.ErrorIs(t, err, ErrNotSpecialist)
	repo.AssertNotCalled(t, "SubmitVerification")
}

func TestSubmitVerification_Success(t *testing.T) {
	repo := new(MockAccountRepo)
	svc := NewService(repo, "test-secret")
	ctx := context.Background()

	repo.On("FindByID", ctx, 3).Return(&Account{ID: 3, Role: RoleSpecialist}, nil)
	repo.On("SubmitVerification", ctx, 3, "https://cdn.example.com/f.jpg", "https://cdn.example.com/b.jpg").
		Return(nil)

	err := svc.SubmitVerification(ctx, 3, SubmitVerificationRequest{
		FrontURL: "https://cdn.example.com/f.jpg",
		BackURL:  "https://cdn.example.com/b.jpg",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestVerificationStatusUpdates(t *testing.T) {
	repo := new(MockAccountRepo)
	svc := NewService(repo, "test-secret")
	ctx := context.Background()

	repo.On("SetVerificationStatus", ctx, 4, VerificationVerified).Return(nil)
	repo.On("SetVerificationStatus", ctx, 5, VerificationUnverified).Return(nil)

	assert.NoError(t, svc.ApproveVerification(ctx, 4))
	assert.NoError(t, svc.RejectVerification(ctx, 5))
	repo.AssertExpectations(t)
}
