package account

import "time"

// Roles and verification statuses mirror the values stored in the
// accounts table.
const (
	RoleClient     = "client"
	RoleSpecialist = "specialist"
	RoleAdmin      = "admin"

	VerificationUnverified = "unverified"
	VerificationPending    = "pending"
	VerificationVerified   = "verified"
)

type Account struct {
	ID                 int       `db:"id" json:"id"`
	Email              string    `db:"email" json:"email"`
	PasswordHash       string    `db:"password_hash" json:"-"`
	FullName           string    `db:"full_name" json:"full_name"`
	Role               string    `db:"role" json:"role"`
	VerificationStatus string    `db:"verification_status" json:"verification_status"`
	IDCardFrontURL     *string   `db:"id_card_front_url" json:"id_card_front_url,omitempty"`
	IDCardBackURL      *string   `db:"id_card_back_url" json:"id_card_back_url,omitempty"`
	Bio                string    `db:"bio" json:"bio"`
	Skills             string    `db:"skills" json:"skills"`
	BasePrice          int64     `db:"base_price" json:"base_price"`
	Balance            int64     `db:"balance" json:"balance"`
	JobsCompleted      int       `db:"jobs_completed" json:"jobs_completed"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=client specialist"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	Account      Account `json:"account"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName  string `json:"full_name"`
	Bio       string `json:"bio"`
	Skills    string `json:"skills"`
	BasePrice int64  `json:"base_price" binding:"omitempty,gt=0"`
}

// SubmitVerificationRequest carries object-storage URLs of the two ID
// card photos; binaries never pass through this service.
type SubmitVerificationRequest struct {
	FrontURL string `json:"front_url" binding:"required,url"`
	BackURL  string `json:"back_url" binding:"required,url"`
}
