package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swoop-build/swoop-backend/internal/projects/domain"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo { return &Repo{db: db} }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// AccountIDForUser resolves a signed-in user to their account. Returns
// "" without error when the user has no account yet.
func (r *Repo) AccountIDForUser(ctx context.Context, firebaseUID string) (string, error) {
	const q = `
select a.id::text
from accounts a
join account_users u on u.account_id = a.id
where u.firebase_uid = $1
limit 1
`
	var id string
	err := r.db.QueryRow(ctx, q, firebaseUID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return id, err
}

// GetByFirebaseUID loads the caller's full account with members and
// addresses.
func (r *Repo) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*Account, error) {
	id, err := r.AccountIDForUser(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

// Get loads an account with its members and addresses.
func (r *Repo) Get(ctx context.Context, accountID string) (*Account, error) {
	const q = `
select id::text, name, owner_uid, created_at, updated_at
from accounts
where id = $1
`
	var a Account
	err := r.db.QueryRow(ctx, q, accountID).Scan(&a.ID, &a.Name, &a.OwnerUID, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if a.Users, err = r.listUsers(ctx, accountID); err != nil {
		return nil, err
	}
	if a.Addresses, err = r.ListAddresses(ctx, accountID); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repo) listUsers(ctx context.Context, accountID string) ([]User, error) {
	const q = `
select id::text, coalesce(firebase_uid, ''), name, email, invite_status, invited_at, created_at
from account_users
where account_id = $1
order by created_at
`
	rows, err := r.db.Query(ctx, q, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.FirebaseUID, &u.Name, &u.Email, &u.Invite, &u.InvitedAt, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Create opens an account owned by the signed-in user and enrolls them
// as its first member.
func (r *Repo) Create(ctx context.Context, firebaseUID, name, email, displayName string) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "My Account"
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var accountID string
	const insAccount = `
insert into accounts (name, owner_uid)
values ($1, $2)
returning id::text
`
	if err := tx.QueryRow(ctx, insAccount, name, firebaseUID).Scan(&accountID); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	const insUser = `
insert into account_users (account_id, firebase_uid, name, email, invite_status)
values ($1, $2, $3, $4, $5)
`
	if _, err := tx.Exec(ctx, insUser, accountID, firebaseUID, displayName, email, domain.InviteAccepted); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, accountID)
}

// AddUser invites a person onto the account. The row starts pending;
// accepting the invite later fills in the firebase uid.
func (r *Repo) AddUser(ctx context.Context, accountID, name, email string) (*Account, error) {
	const q = `
insert into account_users (account_id, name, email, invite_status, invited_at)
values ($1, $2, $3, $4, $5)
`
	_, err := r.db.Exec(ctx, q, accountID, name, email, domain.InvitePending, time.Now().UTC())
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, accountID)
}

// RemoveUser drops a member. The owner cannot be removed.
func (r *Repo) RemoveUser(ctx context.Context, accountID, userID string) (*Account, error) {
	const q = `
delete from account_users u
using accounts a
where u.id = $1 and u.account_id = $2
  and a.id = u.account_id
  and (u.firebase_uid is null or u.firebase_uid <> a.owner_uid)
`
	tag, err := r.db.Exec(ctx, q, userID, accountID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, accountID)
}

// AcceptInvite binds a freshly signed-in user to their pending invite by
// email. No-op when nothing is pending for that address.
func (r *Repo) AcceptInvite(ctx context.Context, firebaseUID, email string) error {
	const q = `
update account_users
set firebase_uid = $1, invite_status = $2
where email = $3 and firebase_uid is null
  and invite_status in ($4, $5)
`
	_, err := r.db.Exec(ctx, q, firebaseUID, domain.InviteAccepted, email,
		domain.InvitePending, domain.InviteReminded)
	return err
}

// ListAddresses returns the account's addresses ordered by type.
func (r *Repo) ListAddresses(ctx context.Context, accountID string) ([]domain.Address, error) {
	const q = `
select id::text, type, line1, line2, city, state, zip, country
from account_addresses
where account_id = $1
order by type
`
	rows, err := r.db.Query(ctx, q, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Address{}
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.Type, &a.Line1, &a.Line2, &a.City, &a.State, &a.Zip, &a.Country); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AddAddress attaches an address to the account; one per type.
func (r *Repo) AddAddress(ctx context.Context, accountID string, a domain.Address) ([]domain.Address, error) {
	const q = `
insert into account_addresses (account_id, type, line1, line2, city, state, zip, country)
values ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := r.db.Exec(ctx, q, accountID, a.Type, a.Line1, a.Line2, a.City, a.State, a.Zip, a.Country)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return r.ListAddresses(ctx, accountID)
}

// UpdateAddress replaces an account address.
func (r *Repo) UpdateAddress(ctx context.Context, accountID, addressID string, a domain.Address) ([]domain.Address, error) {
	const q = `
update account_addresses
set type = $3, line1 = $4, line2 = $5, city = $6, state = $7, zip = $8, country = $9
where id = $1 and account_id = $2
`
	tag, err := r.db.Exec(ctx, q, addressID, accountID, a.Type, a.Line1, a.Line2, a.City, a.State, a.Zip, a.Country)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.ListAddresses(ctx, accountID)
}

// DeleteAddress removes an account address.
func (r *Repo) DeleteAddress(ctx context.Context, accountID, addressID string) ([]domain.Address, error) {
	tag, err := r.db.Exec(ctx,
		`delete from account_addresses where id = $1 and account_id = $2`, addressID, accountID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.ListAddresses(ctx, accountID)
}
