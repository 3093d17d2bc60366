package accounts

import (
	"errors"
	"time"

	"github.com/swoop-build/swoop-backend/internal/projects/domain"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Account is the billing and membership root. Projects hang off an
// account, not off individual users.
type Account struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	OwnerUID  string           `json:"owner_uid"`
	Users     []User           `json:"users"`
	Addresses []domain.Address `json:"addresses"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// User is a member of an account. FirebaseUID is empty until the invite
// is accepted and the person signs in.
type User struct {
	ID          string              `json:"id"`
	FirebaseUID string              `json:"firebase_uid,omitempty"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Invite      domain.InviteStatus `json:"invite"`
	InvitedAt   *time.Time          `json:"invited_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}
