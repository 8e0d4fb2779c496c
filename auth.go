package hesabna

import (
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Auth errors. A failed verification or change leaves the stored secret
// untouched.
var (
	ErrNoSecret  = errors.New("no passphrase has been set")
	ErrBadSecret = errors.New("wrong passphrase")
)

// Auth guards the ledger with a local passphrase. The secret is stored in
// the key/value area of the store only as a bcrypt digest (salted and
// hashed), never in cleartext.
type Auth struct {
	store Store
}

// NewAuth returns an Auth over the given store.
func NewAuth(store Store) *Auth { return &Auth{store: store} }

// HasSecret reports whether a passphrase has been set.
func (a *Auth) HasSecret() (bool, error) {
	_, ok, err := a.store.Get(KeySecret)
	return ok, err
}

// SetSecret hashes and stores the passphrase.
func (a *Auth) SetSecret(passphrase string) error {
	if passphrase == "" {
		return invalidf("passphrase", "must not be empty")
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash passphrase: %w", err)
	}
	data, err := json.Marshal(string(digest))
	if err != nil {
		return err
	}
	return a.store.Set(KeySecret, data)
}

// Verify reports whether the passphrase matches the stored digest. It
// returns false, not an error, when no secret has been set.
func (a *Auth) Verify(passphrase string) (bool, error) {
	raw, ok, err := a.store.Get(KeySecret)
	if err != nil || !ok {
		return false, err
	}
	var digest string
	if err := json.Unmarshal(raw, &digest); err != nil {
		return false, fmt.Errorf("corrupt secret digest: %w", err)
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(passphrase)) == nil, nil
}

// ChangeSecret replaces the passphrase after verifying the old one.
// It returns ErrNoSecret or ErrBadSecret without any state change.
func (a *Auth) ChangeSecret(old, new string) error {
	has, err := a.HasSecret()
	if err != nil {
		return err
	}
	if !has {
		return ErrNoSecret
	}
	ok, err := a.Verify(old)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBadSecret
	}
	return a.SetSecret(new)
}
