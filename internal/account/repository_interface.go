package account

import "context"

type Repository interface {
	Create(ctx context.Context, email, passwordHash, fullName, role string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id int) (*Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id int, req UpdateProfileRequest) (*Account, error)
	SubmitVerification(ctx context.Context, id int, frontURL, backURL string) error
	SetVerificationStatus(ctx context.Context, id int, status string) error
	PromoteToAdmin(ctx context.Context, id int) error
	ListPendingVerification(ctx context.Context) ([]Account, error)
	ListSpecialists(ctx context.Context) ([]Account, error)
}
