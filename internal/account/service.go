package account

import (
	"context"
	"errors"

	"jobmarket/internal/auth"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotSpecialist      = errors.New("only specialists can submit verification")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Account, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*Account, string, string, error)
	GetByID(ctx context.Context, accountID int) (*Account, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *Account, error)
	UpdateProfile(ctx context.Context, accountID int, req UpdateProfileRequest) (*Account, error)
	SubmitVerification(ctx context.Context, accountID int, req SubmitVerificationRequest) error
	ApproveVerification(ctx context.Context, accountID int) error
	RejectVerification(ctx context.Context, accountID int) error
	PromoteToAdmin(ctx context.Context, accountID int) error
	ListPendingVerification(ctx context.Context) ([]Account, error)
	ListSpecialists(ctx context.Context) ([]Account, error)
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Account, string, string, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	account, err := s.repo.Create(ctx, req.Email, passwordHash, req.FullName, req.Role)
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		account.ID,
		account.Email,
		account.Role,
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	return account, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Account, string, string, error) {
	account, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		account.ID,
		account.Email,
		account.Role,
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	return account, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, accountID int) (*Account, error) {
	return s.repo.FindByID(ctx, accountID)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *Account, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	account, err := s.repo.FindByID(ctx, claims.AccountID)
	if err != nil {
		return "", nil, ErrAccountNotFound
	}

	newAccessToken, err := auth.GenerateAccessToken(account.ID, account.Email, account.Role, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, account, nil
}

func (s *service) UpdateProfile(ctx context.Context, accountID int, req UpdateProfileRequest) (*Account, error) {
	return s.repo.UpdateProfile(ctx, accountID, req)
}

func (s *service) SubmitVerification(ctx context.Context, accountID int, req SubmitVerificationRequest) error {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	if account.Role != RoleSpecialist {
		return ErrNotSpecialist
	}

	return s.repo.SubmitVerification(ctx, accountID, req.FrontURL, req.BackURL)
}

func (s *service) ApproveVerification(ctx context.Context, accountID int) error {
	return s.repo.SetVerificationStatus(ctx, accountID, VerificationVerified)
}

// RejectVerification resets the account to unverified so the
// specialist can resubmit with new documents.
func (s *service) RejectVerification(ctx context.Context, accountID int) error {
	return s.repo.SetVerificationStatus(ctx, accountID, VerificationUnverified)
}

func (s *service) PromoteToAdmin(ctx context.Context, accountID int) error {
	return s.repo.PromoteToAdmin(ctx, accountID)
}

func (s *service) ListPendingVerification(ctx context.Context) ([]Account, error) {
	return s.repo.ListPendingVerification(ctx)
}

func (s *service) ListSpecialists(ctx context.Context) ([]Account, error) {
	return s.repo.ListSpecialists(ctx)
}
