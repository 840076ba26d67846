package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	applog "artvista/internal/log"
	"artvista/internal/storage"
	"artvista/models"
)

// Directory owns the registered-users table shared by every workspace, together with
// the fixed staff table. Registration is serialised so concurrent sign ups cannot lose
// each other's writes.
type Directory struct {
	mu       sync.Mutex
	kv       storage.Store
	staff    StaffTable
	hashCost int
	now      func() time.Time
	newID    func() string
}

// DirectoryOption customises a Directory.
type DirectoryOption func(*Directory)

// WithStaff replaces the built-in staff table.
func WithStaff(table StaffTable) DirectoryOption {
	return func(d *Directory) {
		d.staff = table
	}
}

// WithHashCost sets the bcrypt cost used for new passwords.
func WithHashCost(cost int) DirectoryOption {
	return func(d *Directory) {
		d.hashCost = cost
	}
}

// WithDirectoryClock overrides the clock used to stamp new accounts.
func WithDirectoryClock(now func() time.Time) DirectoryOption {
	return func(d *Directory) {
		d.now = now
	}
}

// WithIDGenerator overrides how account ids are generated.
func WithIDGenerator(fn func() string) DirectoryOption {
	return func(d *Directory) {
		d.newID = fn
	}
}

// NewDirectory builds a Directory over kv.
func NewDirectory(kv storage.Store, opts ...DirectoryOption) *Directory {
	d := &Directory{
		kv:       kv,
		staff:    DefaultStaff,
		hashCost: bcrypt.DefaultCost,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Staff returns the staff credential for email, if any.
func (d *Directory) Staff(email string) (StaffCredential, bool) {
	return d.staff.Lookup(email)
}

// Register creates a visitor account. Staff addresses and existing accounts are rejected.
func (d *Directory) Register(ctx context.Context, email, password, name string) (models.Account, error) {
	lower := normalizeEmail(email)
	if _, ok := d.staff.Lookup(lower); ok {
		return models.Account{}, ErrDuplicateStaffEmail
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load(ctx)
	if err != nil {
		return models.Account{}, err
	}
	if _, exists := users[lower]; exists {
		return models.Account{}, ErrDuplicateAccount
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), d.hashCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(lower, "@")
	}

	account := models.Account{
		ID:           d.newID(),
		Email:        lower,
		Name:         name,
		Role:         models.RoleVisitor,
		CreatedAt:    d.now(),
		PasswordHash: string(hashed),
	}
	users[lower] = account

	if err := storage.SaveJSON(ctx, d.kv, storage.KeyUsers, users); err != nil {
		return models.Account{}, err
	}

	applog.Debug(ctx, "account registered", "accountID", account.ID, "email", account.Email)
	return account, nil
}

// Lookup returns the registered account for email.
func (d *Directory) Lookup(ctx context.Context, email string) (models.Account, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load(ctx)
	if err != nil {
		return models.Account{}, false, err
	}
	account, ok := users[normalizeEmail(email)]
	return account, ok, nil
}

// Authenticate verifies a registered account's password.
func (d *Directory) Authenticate(ctx context.Context, email, password string) (models.Account, error) {
	account, ok, err := d.Lookup(ctx, email)
	if err != nil {
		return models.Account{}, err
	}
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return models.Account{}, ErrIncorrectPassword
		}
		return models.Account{}, fmt.Errorf("compare password: %w", err)
	}
	return account, nil
}

// Accounts lists every registered account.
func (d *Directory) Accounts(ctx context.Context) ([]models.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	accounts := make([]models.Account, 0, len(users))
	for _, account := range users {
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (d *Directory) load(ctx context.Context) (map[string]models.Account, error) {
	users := map[string]models.Account{}
	if _, err := storage.LoadJSON(ctx, d.kv, storage.KeyUsers, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = map[string]models.Account{}
	}
	return users, nil
}
