package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/apperrors"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/auth"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

const minPasswordLength = 6

// AccountService registers users, signs them in and manages their profile.
type AccountService struct {
	users  UserStore
	tokens *auth.TokenIssuer
	log    *zap.Logger
	cost   int
}

func NewAccountService(users UserStore, tokens *auth.TokenIssuer, log *zap.Logger) *AccountService {
	return &AccountService{users: users, tokens: tokens, log: log, cost: bcrypt.DefaultCost}
}

func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" {
		return nil, apperrors.Validation("Username and email are required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperrors.Validation("Password must be at least 6 characters")
	}

	if err := s.ensureAvailable(ctx, username, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, "Failed to hash password", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		Password:     string(hash),
		ProfileImage: strings.TrimSpace(req.ProfileImage),
		Role:         models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	return s.respond(user, "User registered successfully")
}

func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	return s.respond(user, "Login successful")
}

func (s *AccountService) Profile(ctx context.Context, actor auth.Identity) (*models.User, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, actor.UserID)
}

func (s *AccountService) UpdateProfile(ctx context.Context, actor auth.Identity, req models.UpdateProfileRequest) (*models.User, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Username != nil {
		username, err := requiredText("username", *req.Username)
		if err != nil {
			return nil, err
		}
		if username != actor.Username {
			if _, err := s.users.FindByUsername(ctx, username); err == nil {
				return nil, apperrors.Conflict("Username already taken")
			} else if !apperrors.Is(err, apperrors.ErrNotFound) {
				return nil, err
			}
		}
		fields["username"] = username
	}
	if req.ProfileImage != nil {
		fields["profile_image"] = strings.TrimSpace(*req.ProfileImage)
	}
	if len(fields) == 0 {
		return nil, apperrors.Validation("No fields to update")
	}

	return s.users.Update(ctx, actor.UserID, fields)
}

func (s *AccountService) ChangePassword(ctx context.Context, actor auth.Identity, req models.ChangePasswordRequest) error {
	if err := requireUser(actor); err != nil {
		return err
	}
	if len(req.NewPassword) < minPasswordLength {
		return apperrors.Validation("Password must be at least 6 characters")
	}

	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return apperrors.Validation("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, "Failed to hash password", err)
	}
	if _, err := s.users.Update(ctx, user.ID, map[string]interface{}{"password": string(hash)}); err != nil {
		return err
	}

	s.log.Info("password changed", zap.String("user_id", user.ID))
	return nil
}

// LoadIdentity returns the current identity of userID as stored, so renames
// and role changes apply before the caller's token is reissued.
func (s *AccountService) LoadIdentity(ctx context.Context, userID string) (auth.Identity, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return auth.Identity{}, apperrors.Unauthorized("User no longer exists")
		}
		return auth.Identity{}, err
	}
	return auth.IdentityOf(user), nil
}

// EnsureAdmin creates the bootstrap administrator, or promotes an existing
// account with the same email.
func (s *AccountService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if username = strings.TrimSpace(username); username == "" {
		username = defaultAdminName(email)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == models.RoleAdmin {
			return nil
		}
		_, err = s.users.Update(ctx, existing.ID, map[string]interface{}{"role": models.RoleAdmin})
		if err == nil {
			s.log.Info("user promoted to admin", zap.String("user_id", existing.ID))
		}
		return err
	case !apperrors.Is(err, apperrors.ErrNotFound):
		return err
	}

	if _, err := s.Register(ctx, models.RegisterRequest{Username: username, Email: email, Password: password}); err != nil {
		return err
	}
	created, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	_, err = s.users.Update(ctx, created.ID, map[string]interface{}{"role": models.RoleAdmin})
	return err
}

// defaultAdminName uses the local part of email, or "admin" when there is none.
func defaultAdminName(email string) string {
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	return "admin"
}

func (s *AccountService) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return apperrors.Conflict("Username or email already exists")
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return apperrors.Conflict("Username or email already exists")
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}

func (s *AccountService) respond(user *models.User, message string) (*models.AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, "Failed to generate token", err)
	}
	return &models.AuthResponse{Token: token, User: *user, Message: message}, nil
}
