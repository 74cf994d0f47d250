package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopmate/shopmate-go/internal/crypto"
	"github.com/shopmate/shopmate-go/internal/model"
	"github.com/shopmate/shopmate-go/internal/repository"
)

var (
	// Required-field errors, one per field so each missing field is
	// reported independently.
	ErrNameRequired        = errors.New("name is required")
	ErrEmailRequired       = errors.New("email is required")
	ErrPasswordRequired    = errors.New("password is required")
	ErrPhoneRequired       = errors.New("phone is required")
	ErrAddressRequired     = errors.New("address is required")
	ErrAnswerRequired      = errors.New("answer is required")
	ErrNewPasswordRequired = errors.New("new password is required")

	ErrEmailTaken       = errors.New("email already registered")
	ErrInvalidInput     = errors.New("invalid email or password")
	ErrUnknownEmail     = errors.New("email is not registered")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrWrongCredentials = errors.New("wrong email or answer")

	ErrUnauthenticated          = errors.New("not signed in")
	ErrUserNotFound             = errors.New("user not found")
	ErrCurrentPasswordRequired  = errors.New("current password is required")
	ErrIncorrectPassword        = errors.New("current password is incorrect")
	ErrInvalidPhone             = errors.New("phone must be 8 to 15 digits")
	ErrIncompletePasswordChange = errors.New("both new password and confirmation are required")
	ErrPasswordMismatch         = errors.New("new password and confirmation do not match")
	ErrPasswordTooShort         = errors.New("new password must be at least 6 characters")
	ErrSamePassword             = errors.New("new password must differ from the current password")
	ErrNoChanges                = errors.New("nothing to update")
)

var phonePattern = regexp.MustCompile(`^[0-9]{8,15}$`)

// UserStore is the persistence surface the auth service needs. Implemented
// by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmailAndAnswer(ctx context.Context, email, answer string) (*model.User, error)
	Update(ctx context.Context, id int64, upd model.UserUpdate) error
}

// AuthService handles registration, login, password reset, and profile
// self-update.
type AuthService struct {
	store     UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// requiredField pairs a submitted value with the error reported when it is
// missing. Checks run in declaration order and the first failure wins, for
// every flow that validates required fields.
type requiredField struct {
	value string
	err   error
}

func checkRequired(fields []requiredField) error {
	for _, f := range fields {
		if f.value == "" {
			return f.err
		}
	}
	return nil
}

// Register creates a new user account with the standard role. The returned
// projection never includes the password hash.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.PublicUser, error) {
	err := checkRequired([]requiredField{
		{req.Name, ErrNameRequired},
		{req.Email, ErrEmailRequired},
		{req.Password, ErrPasswordRequired},
		{req.Phone, ErrPhoneRequired},
		{req.Address, ErrAddressRequired},
		{req.Answer, ErrAnswerRequired},
	})
	if err != nil {
		return model.PublicUser{}, err
	}

	if _, err := s.store.GetByEmail(ctx, req.Email); err == nil {
		return model.PublicUser{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.PublicUser{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.PublicUser{}, err
	}

	user := &model.User{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hash,
		Phone:          req.Phone,
		Address:        req.Address,
		SecurityAnswer: req.Answer,
		Role:           model.RoleStandard,
	}

	if err := s.store.Create(ctx, user); err != nil {
		// Two concurrent registrations can both pass the pre-check; the
		// unique index on email rejects the second insert.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.PublicUser{}, ErrEmailTaken
		}
		return model.PublicUser{}, err
	}

	return user.Public(), nil
}

// Login authenticates a user and returns their public projection and a
// session token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.PublicUser, string, error) {
	if req.Email == "" || req.Password == "" {
		return model.PublicUser{}, "", ErrInvalidInput
	}

	user, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.PublicUser{}, "", ErrUnknownEmail
		}
		return model.PublicUser{}, "", err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.PublicUser{}, "", err
	}
	if !match {
		return model.PublicUser{}, "", ErrInvalidPassword
	}

	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.PublicUser{}, "", err
	}

	return user.Public(), token, nil
}

// ForgotPassword resets the stored password for the user matching both the
// email and the security-question answer. No token is issued; the user logs
// in with the new password afterward.
func (s *AuthService) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error {
	err := checkRequired([]requiredField{
		{req.Email, ErrEmailRequired},
		{req.Answer, ErrAnswerRequired},
		{req.NewPassword, ErrNewPasswordRequired},
	})
	if err != nil {
		return err
	}

	user, err := s.store.GetByEmailAndAnswer(ctx, req.Email, req.Answer)
	if err != nil {
		// Wrong email and wrong answer are deliberately indistinguishable.
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrWrongCredentials
		}
		return err
	}

	hash, err := crypto.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.store.Update(ctx, user.ID, model.UserUpdate{PasswordHash: &hash})
}

// UpdateProfile applies a self-service profile update for the signed-in
// user. Every update, password-related or not, must re-prove the current
// password. Only fields that actually differ from stored values are written;
// an update that changes nothing fails with ErrNoChanges.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (model.PublicUser, error) {
	if userID == 0 {
		return model.PublicUser{}, ErrUnauthenticated
	}

	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.PublicUser{}, ErrUserNotFound
		}
		return model.PublicUser{}, err
	}

	if req.OldPassword == "" {
		return model.PublicUser{}, ErrCurrentPasswordRequired
	}
	match, err := crypto.VerifyPassword(req.OldPassword, user.PasswordHash)
	if err != nil {
		return model.PublicUser{}, err
	}
	if !match {
		return model.PublicUser{}, ErrIncorrectPassword
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.PublicUser{}, ErrNameRequired
	}
	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		return model.PublicUser{}, ErrInvalidPhone
	}

	var newHash string
	if req.NewPassword != "" || req.ConfirmPassword != "" {
		hash, err := s.validatePasswordChange(req, user.PasswordHash)
		if err != nil {
			return model.PublicUser{}, err
		}
		newHash = hash
	}

	upd := model.UserUpdate{}
	if name != user.Name {
		upd.Name = &name
	}
	if req.Phone != "" && req.Phone != user.Phone {
		upd.Phone = &req.Phone
	}
	if req.Address != "" && req.Address != user.Address {
		upd.Address = &req.Address
	}
	if newHash != "" {
		upd.PasswordHash = &newHash
	}

	if upd.Empty() {
		return model.PublicUser{}, ErrNoChanges
	}

	if err := s.store.Update(ctx, userID, upd); err != nil {
		return model.PublicUser{}, err
	}

	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}
	if upd.Address != nil {
		user.Address = *upd.Address
	}
	return user.Public(), nil
}

// validatePasswordChange enforces the password-change invariants and returns
// the fresh hash for the new password.
func (s *AuthService) validatePasswordChange(req model.UpdateProfileRequest, currentHash string) (string, error) {
	if req.NewPassword == "" || req.ConfirmPassword == "" {
		return "", ErrIncompletePasswordChange
	}
	if req.NewPassword != req.ConfirmPassword {
		return "", ErrPasswordMismatch
	}
	if len(req.NewPassword) < 6 {
		return "", ErrPasswordTooShort
	}

	// The new password must differ from the current one; checked by
	// verifying it against the stored hash.
	same, err := crypto.VerifyPassword(req.NewPassword, currentHash)
	if err != nil {
		return "", err
	}
	if same {
		return "", ErrSamePassword
	}

	return crypto.HashPassword(req.NewPassword)
}

// GetUser returns the public projection for the given user id.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (model.PublicUser, error) {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.PublicUser{}, ErrUserNotFound
		}
		return model.PublicUser{}, err
	}
	return user.Public(), nil
}
