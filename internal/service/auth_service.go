package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"go-todo-api/internal/auth"
	"go-todo-api/internal/model"
	"go-todo-api/internal/util"
	"go-todo-api/pkg/apierror"
)

const (
	minPasswordLength       = 5
	maxPasswordLength       = 72
	maxChangePasswordLength = 24

	tokenTypeBearer = "bearer"
)

// AuthService composes the credential store and the token authenticator
// into the account operations exposed over HTTP. Every authentication
// failure leaves here as auth.ErrAuthenticationFailed or auth.ErrUnauthorized;
// the precise reason only reaches the log and the audit trail.
type AuthService struct {
	users       UserStore
	credentials *auth.CredentialStore
	tokens      *auth.TokenAuthenticator
	audit       *AuditService
	accessTTL   time.Duration
}

func NewAuthService(
	users UserStore,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenAuthenticator,
	audit *AuditService,
	accessTTL time.Duration,
) (*AuthService, error) {
	if accessTTL <= 0 {
		return nil, fmt.Errorf("access token ttl must be positive")
	}

	credentials, err := auth.NewCredentialStore(hasher, users)
	if err != nil {
		return nil, err
	}

	return &AuthService{
		users:       users,
		credentials: credentials,
		tokens:      tokens,
		audit:       audit,
		accessTTL:   accessTTL,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest, actor model.AuditActor) (model.User, error) {
	user, err := s.register(ctx, req)

	actor.Username = strings.TrimSpace(req.Username)
	if err != nil {
		s.audit.Log(ctx, model.AuditActionRegister, actor, model.AuditStatusFailure, registerFailureDetail(err))
		return model.User{}, err
	}

	actor.UserID = user.ID
	s.audit.Log(ctx, model.AuditActionRegister, actor, model.AuditStatusSuccess, "")
	slog.Info("account created", "user_id", user.ID, "username", user.Username, "role", user.Role)

	return user, nil
}

func (s *AuthService) register(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	username := util.CleanText(req.Username)
	email := strings.TrimSpace(req.Email)
	role := strings.ToLower(strings.TrimSpace(req.Role))

	if username == "" {
		return model.User{}, apierror.BadRequest("username is required", "username")
	}
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		return model.User{}, apierror.BadRequest("a valid email is required", "email")
	}
	if n := utf8.RuneCountInString(req.Password); n < minPasswordLength || n > maxPasswordLength {
		return model.User{}, apierror.BadRequest(
			fmt.Sprintf("password must be between %d and %d characters", minPasswordLength, maxPasswordLength), "password")
	}
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleAdmin && role != model.RoleUser {
		return model.User{}, apierror.BadRequest("role must be admin or user", "role")
	}

	hash, err := s.credentials.Hasher().Hash(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidArgument) {
			return model.User{}, apierror.BadRequest("password is too long", "password")
		}
		return model.User{}, err
	}

	user, err := s.users.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		FirstName:    util.CleanText(req.FirstName),
		LastName:     util.CleanText(req.LastName),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, model.ErrUserAlreadyExists) {
			return model.User{}, apierror.Conflict("username or email already exists", username)
		}
		return model.User{}, fmt.Errorf("create account: %w", err)
	}

	return user, nil
}

func registerFailureDetail(err error) string {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		return strings.ToLower(apiErr.Code)
	}
	return "internal"
}

// Login checks the password and mints an access token for the account.
func (s *AuthService) Login(ctx context.Context, username string, password string, actor model.AuditActor) (model.TokenResponse, error) {
	username = util.CleanText(username)
	actor.Username = username

	user, err := s.credentials.Authenticate(ctx, username, password)
	if err != nil {
		kind := auth.Kind(err)
		s.audit.Log(ctx, model.AuditActionLogin, actor, model.AuditStatusFailure, kind)

		if kind == "internal" {
			return model.TokenResponse{}, fmt.Errorf("authenticate: %w", err)
		}

		slog.Warn("login rejected", "username", actor.Username, "reason", kind, "client_ip", actor.IP)
		return model.TokenResponse{}, auth.External(err)
	}

	token, err := s.tokens.Mint(user.Username, user.ID, user.Role, s.accessTTL)
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("mint access token: %w", err)
	}

	actor.UserID = user.ID
	s.audit.Log(ctx, model.AuditActionLogin, actor, model.AuditStatusSuccess, "")

	return model.TokenResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}

// Authorize turns a presented bearer token into the caller's identity.
func (s *AuthService) Authorize(token string) (model.Identity, error) {
	identity, err := s.tokens.Verify(token)
	if err != nil {
		slog.Debug("token rejected", "reason", auth.Kind(err))
		return model.Identity{}, auth.External(err)
	}

	return identity, nil
}

func (s *AuthService) Me(ctx context.Context, identity model.Identity) (model.User, error) {
	return s.users.FindByID(ctx, identity.ID)
}

func (s *AuthService) ChangePassword(ctx context.Context, identity model.Identity, req model.ChangePasswordRequest, actor model.AuditActor) error {
	fields := []struct{ name, value string }{
		{"password", req.Password},
		{"new_password", req.NewPassword},
	}
	for _, f := range fields {
		if n := utf8.RuneCountInString(f.value); n < minPasswordLength || n > maxChangePasswordLength {
			return apierror.BadRequest(
				fmt.Sprintf("%s must be between %d and %d characters", f.name, minPasswordLength, maxChangePasswordLength), f.name)
		}
	}

	actor.UserID = identity.ID
	actor.Username = identity.Username

	user, err := s.users.FindByID(ctx, identity.ID)
	if err != nil {
		return err
	}

	if !user.IsActive {
		s.audit.Log(ctx, model.AuditActionPasswordChange, actor, model.AuditStatusFailure, auth.Kind(auth.ErrAccountInactive))
		slog.Warn("password change rejected", "user_id", identity.ID, "reason", auth.Kind(auth.ErrAccountInactive))
		return auth.ErrAuthenticationFailed
	}

	if !s.credentials.Hasher().Verify(req.Password, user.PasswordHash) {
		s.audit.Log(ctx, model.AuditActionPasswordChange, actor, model.AuditStatusFailure, auth.Kind(auth.ErrPasswordMismatch))
		slog.Warn("password change rejected", "user_id", identity.ID, "reason", auth.Kind(auth.ErrPasswordMismatch))
		return auth.ErrAuthenticationFailed
	}

	hash, err := s.credentials.Hasher().Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.audit.Log(ctx, model.AuditActionPasswordChange, actor, model.AuditStatusSuccess, "")
	return nil
}
