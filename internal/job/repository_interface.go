package job

import "context"

type Repository interface {
	Create(ctx context.Context, clientID int, req CreateJobRequest) (*Job, error)
	GetByID(ctx context.Context, id int) (*Job, error)
	ListByClient(ctx context.Context, clientID int) ([]Job, error)
	ListBySpecialist(ctx context.Context, specialistID int) ([]Job, error)
	ListOpen(ctx context.Context, category string) ([]Job, error)
	Claim(ctx context.Context, jobID, specialistID int) (*Job, error)
	Complete(ctx context.Context, jobID, specialistID int) (*Job, error)
}
