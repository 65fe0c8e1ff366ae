// Package repository implements the entity repositories: one per
// collection, create/read/update only, every remote call funneled through
// the store bridge. Failures surface as nil or false, never as error
// values; diagnostics go to the logger.
package repository

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mangum87/Charis/internal/domain/models"
	"github.com/Mangum87/Charis/internal/store"
)

const userCollection = "User"

// bcryptCost matches the low cost the existing account data was hashed
// with.
const bcryptCost = 5

// UserRepository persists operator accounts. Usernames are case-folded to
// a canonical lowercase document key.
type UserRepository struct {
	store  store.Store
	logger *zap.Logger
}

// NewUserRepository wires a user repository.
func NewUserRepository(st store.Store, logger *zap.Logger) *UserRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserRepository{store: st, logger: logger}
}

// CreateUser writes a new account and returns it with Password holding the
// bcrypt hash. Nil on failure.
func (r *UserRepository) CreateUser(uname, password string, admin, active bool, fname, lname string) *models.User {
	hash, err := HashPassword(password)
	if err != nil {
		r.logger.Error("hash password", zap.Error(err))
		return nil
	}

	key := strings.ToLower(uname)
	op := r.store.Set(userCollection, key, store.Fields{
		"password":  hash,
		"admin":     admin,
		"active":    active,
		"firstName": fname,
		"lastName":  lname,
	})
	if !store.Await(op) {
		r.logger.Error("create user", zap.String("username", key), zap.Error(op.Err()))
		return nil
	}

	return &models.User{
		Username:  uname,
		FirstName: fname,
		LastName:  lname,
		Password:  hash,
		Admin:     admin,
		Active:    active,
	}
}

// GetUser returns the account for uname, looked up case-insensitively.
// Nil when the account does not exist or the read fails.
func (r *UserRepository) GetUser(uname string) *models.User {
	key := strings.ToLower(uname)
	op := r.store.Get(userCollection, key)
	if !store.Await(op) {
		r.logger.Error("get user", zap.String("username", key), zap.Error(op.Err()))
		return nil
	}

	snap := op.Snapshot()
	if !snap.Exists() {
		return nil
	}

	return &models.User{
		Username:  uname,
		FirstName: snap.Str("firstName"),
		LastName:  snap.Str("lastName"),
		Password:  snap.Str("password"),
		Admin:     snap.Bool("admin"),
		Active:    snap.Bool("active"),
	}
}

// UpdateUser writes every account field except the password, as one update
// per field combined into a single outcome.
func (r *UserRepository) UpdateUser(u *models.User) bool {
	if u == nil {
		return false
	}

	key := strings.ToLower(u.Username)
	op1 := r.store.Update(userCollection, key, store.Fields{"firstName": u.FirstName})
	op2 := r.store.Update(userCollection, key, store.Fields{"lastName": u.LastName})
	op3 := r.store.Update(userCollection, key, store.Fields{"active": u.Active})
	op4 := r.store.Update(userCollection, key, store.Fields{"admin": u.Admin})

	if !store.AwaitAll(op1, op2, op3, op4) {
		r.logger.Error("update user", zap.String("username", key))
		return false
	}
	return true
}

// UpdatePassword hashes the plaintext password carried by u and writes the
// hash.
func (r *UserRepository) UpdatePassword(u *models.User) bool {
	if u == nil {
		return false
	}

	hash, err := HashPassword(u.Password)
	if err != nil {
		r.logger.Error("hash password", zap.Error(err))
		return false
	}

	key := strings.ToLower(u.Username)
	op := r.store.Update(userCollection, key, store.Fields{"password": hash})
	if !store.Await(op) {
		r.logger.Error("update password", zap.String("username", key), zap.Error(op.Err()))
		return false
	}
	return true
}

// HashPassword hashes a plaintext password with bcrypt and a random salt.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
