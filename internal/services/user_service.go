package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/trip-planner-api/internal/auth"
	"github.com/yukikurage/trip-planner-api/internal/constants"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/logging"
	"github.com/yukikurage/trip-planner-api/internal/models"
	"github.com/yukikurage/trip-planner-api/internal/repository"
	"github.com/yukikurage/trip-planner-api/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrRegistrationFieldsRequired = apierrors.BadRequest("registration missing fields", "All fields are required")
	ErrEmailTaken                 = apierrors.Conflict("email already registered", "Email already in use")
	ErrUsernameTaken              = apierrors.Conflict("username already registered", "Username already in use")
	ErrWeakPassword               = apierrors.Validation("password policy violated", validation.PasswordPolicyMessage)
	ErrCredentialsRequired        = apierrors.BadRequest("login missing fields", "Email and password are required")
	ErrInvalidCredentials         = apierrors.Unauthorized("credential mismatch", "Invalid email or password")
	ErrEmailRequired              = apierrors.BadRequest("reset request without email", "Email is required")
	ErrUserNotFound               = apierrors.NotFound("user not found", "User not found")
	ErrResetFieldsRequired        = apierrors.BadRequest("reset apply missing fields", "Token and new password are required")
	ErrInvalidResetToken          = apierrors.Unauthorized("reset token rejected", "Invalid or expired token")
	ErrInvalidTokenType           = apierrors.Unauthorized("token purpose mismatch", "Invalid token type")
	ErrNotAccountOwner            = apierrors.Forbidden("acting on another account", "You can only modify your own account")
	ErrInvalidUsername            = apierrors.Validation("username length out of range",
		fmt.Sprintf("Username must be between %d and %d characters", constants.MinUsernameLength, constants.MaxUsernameLength))
)

func validUsername(username string) bool {
	n := utf8.RuneCountInString(username)
	return n >= constants.MinUsernameLength && n <= constants.MaxUsernameLength
}

// ResetNotifier delivers password-reset tokens to users.
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, user *models.User, token string, expiresAt time.Time) error
}

// LogResetNotifier writes reset tokens to the debug log. It stands in until a
// mail transport is configured.
type LogResetNotifier struct{}

func (LogResetNotifier) SendPasswordReset(_ context.Context, user *models.User, token string, expiresAt time.Time) error {
	logging.Debug().
		Str("user_id", user.ID).
		Str("reset_token", token).
		Time("expires_at", expiresAt).
		Msg("password reset requested")
	return nil
}

// UserService handles accounts, credentials and password resets.
type UserService struct {
	users    repository.UserRepository
	tokens   *auth.TokenManager
	notifier ResetNotifier
	now      func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, tokens *auth.TokenManager, notifier ResetNotifier) *UserService {
	if notifier == nil {
		notifier = LogResetNotifier{}
	}
	return &UserService{
		users:    users,
		tokens:   tokens,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a user and issues a session token.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	username := strings.TrimSpace(input.Username)
	email := models.NormalizeEmail(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, "", ErrRegistrationFieldsRequired
	}
	if !validUsername(username) {
		return nil, "", ErrInvalidUsername
	}
	if !validation.IsStrongPassword(input.Password) {
		return nil, "", ErrWeakPassword
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: input.Password,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", wrapStoreError("create user", err)
	}

	token, err := s.tokens.IssueSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues a session token.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*models.User, string, error) {
	email := models.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, "", ErrCredentialsRequired
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !auth.VerifyPassword(input.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// RequestPasswordReset stores a fresh reset token on the user and hands it to the notifier.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	email = models.NormalizeEmail(email)
	if email == "" {
		return ErrEmailRequired
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	token, expiresAt, err := s.tokens.IssueReset(user.ID)
	if err != nil {
		return err
	}
	if err := s.users.SetResetToken(ctx, user.ID, token, expiresAt.UTC()); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	if err := s.notifier.SendPasswordReset(ctx, user, token, expiresAt); err != nil {
		return fmt.Errorf("failed to deliver reset token: %w", err)
	}
	return nil
}

// ResetPassword applies a reset token. The token is consumed on success.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return ErrResetFieldsRequired
	}

	claims, err := s.tokens.VerifyReset(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenPurpose) {
			return ErrInvalidTokenType
		}
		return ErrInvalidResetToken.WithCause(err)
	}

	if !validation.IsStrongPassword(newPassword) {
		return ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	ok, err := s.users.ApplyPasswordReset(ctx, claims.UserID(), token, hash, s.now())
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if !ok {
		return ErrInvalidResetToken
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if err := requireID(id, "User"); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateUserInput carries the fields to change; nil means unchanged.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
}

// UpdateUser changes the caller's own account.
func (s *UserService) UpdateUser(ctx context.Context, actorID, id string, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.ID != actorID {
		return nil, ErrNotAccountOwner
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if !validUsername(username) {
			return nil, ErrInvalidUsername
		}
		if username != user.Username {
			if _, err := s.users.FindByUsername(ctx, username); err == nil {
				return nil, ErrUsernameTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check username: %w", err)
			}
		}
		user.Username = username
	}

	if input.Email != nil {
		email := models.NormalizeEmail(*input.Email)
		if email != user.Email {
			if _, err := s.users.FindByEmail(ctx, email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
		}
		user.Email = email
	}

	if input.Password != nil {
		if !validation.IsStrongPassword(*input.Password) {
			return nil, ErrWeakPassword
		}
		user.Password = *input.Password
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, wrapStoreError("update user", err)
	}
	return user, nil
}

// DeleteUser removes the caller's own account and returns the deleted record.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id string) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.ID != actorID {
		return nil, ErrNotAccountOwner
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return user, nil
}
