package order

import (
	"errors"
	"fmt"
	"strings"

	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDeliveryIsNotConstructed         = errors.New("Delivery must be created via NewDelivery")
	ErrAccessCredentialIsNotConstructed = errors.New("AccessCredential must be created via NewAccessCredential or RestoreAccessCredential")
)

const (
	// CredentialMinLength is the shortest plain credential accepted.
	CredentialMinLength = 4

	// credentialMaxLength is the bcrypt input limit in bytes.
	credentialMaxLength = 72

	phoneMinLength = 6
	phoneMaxLength = 20
)

// AccessCredential is the bcrypt hash of the secret a customer uses to look
// up their order. The plain value is never kept.
type AccessCredential struct {
	hash  []byte
	guard guard.ConstructorGuard
}

// NewAccessCredential hashes plain with bcrypt's default cost.
func NewAccessCredential(plain string) (AccessCredential, error) {
	if plain == "" {
		return AccessCredential{}, errs.NewValueIsRequiredError("access credential")
	}
	if len(plain) < CredentialMinLength || len(plain) > credentialMaxLength {
		return AccessCredential{}, errs.NewValueIsOutOfRangeError(
			"access credential length", len(plain), CredentialMinLength, credentialMaxLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return AccessCredential{}, errs.NewValueIsInvalidErrorWithCause("access credential", err)
	}
	return AccessCredential{hash: hash, guard: guard.NewConstructorGuard()}, nil
}

// RestoreAccessCredential wraps a hash loaded from storage.
func RestoreAccessCredential(hash string) (AccessCredential, error) {
	if hash == "" {
		return AccessCredential{}, errs.NewValueIsRequiredError("access credential hash")
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return AccessCredential{}, errs.NewValueIsInvalidErrorWithCause("access credential hash", err)
	}
	return AccessCredential{hash: []byte(hash), guard: guard.NewConstructorGuard()}, nil
}

// Matches reports whether plain hashes to the stored credential.
func (c AccessCredential) Matches(plain string) bool {
	if c.Validate() != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword(c.hash, []byte(plain)) == nil
}

func (c AccessCredential) Hash() string {
	return string(c.hash)
}

func (c AccessCredential) Validate() error {
	return c.guard.Validate(ErrAccessCredentialIsNotConstructed)
}

// Delivery holds the recipient of a print order.
type Delivery struct {
	name       string
	phone      string
	address    string
	district   string
	thana      string
	credential AccessCredential
	guard      guard.ConstructorGuard
}

// NewDelivery validates recipient details. Phone numbers are digits with an
// optional leading '+'; district and thana (sub-district) are free text.
func NewDelivery(name, phone, address, district, thana string, credential AccessCredential) (Delivery, error) {
	d := Delivery{
		name:     strings.TrimSpace(name),
		address:  strings.TrimSpace(address),
		district: strings.TrimSpace(district),
		thana:    strings.TrimSpace(thana),
	}

	normalizedPhone, phoneErr := NormalizePhone(phone)
	if err := errors.Join(
		requireText("delivery name", d.name),
		phoneErr,
		requireText("delivery address", d.address),
		requireText("delivery district", d.district),
		credential.Validate(),
	); err != nil {
		return Delivery{}, err
	}

	d.phone = normalizedPhone
	d.credential = credential
	d.guard = guard.NewConstructorGuard()
	return d, nil
}

// NormalizePhone trims spaces and dashes and validates the result.
func NormalizePhone(raw string) (string, error) {
	phone := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(raw))
	if phone == "" {
		return "", errs.NewValueIsRequiredError("delivery phone")
	}
	digits := strings.TrimPrefix(phone, "+")
	if len(digits) < phoneMinLength || len(digits) > phoneMaxLength {
		return "", errs.NewValueIsOutOfRangeError("delivery phone length", len(digits), phoneMinLength, phoneMaxLength)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", errs.NewValueIsInvalidErrorWithCause("delivery phone", fmt.Errorf("%q is not a digit", r))
		}
	}
	return phone, nil
}

func requireText(paramName, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}

func (d Delivery) Name() string                 { return d.name }
func (d Delivery) Phone() string                { return d.phone }
func (d Delivery) Address() string              { return d.address }
func (d Delivery) District() string             { return d.district }
func (d Delivery) Thana() string                { return d.thana }
func (d Delivery) Credential() AccessCredential { return d.credential }

func (d Delivery) Validate() error {
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}
