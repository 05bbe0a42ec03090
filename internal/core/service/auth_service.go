package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/unimag/portal/internal/core/domain"
	"github.com/unimag/portal/internal/core/ports"
)

const minPasswordLength = 8

// LoginLimiter abstracts the failed-login throttle (Redis). All limiter
// errors are non-fatal: a broken limiter must not lock users out.
type LoginLimiter interface {
	TooMany(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration and login.
type AuthService struct {
	users     ports.UserRepository
	faculties ports.FacultyRepository
	limiter   LoginLimiter
	activity  ports.ActivityRecorder
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	faculties ports.FacultyRepository,
	limiter LoginLimiter,
	activity ports.ActivityRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		faculties: faculties,
		limiter:   limiter,
		activity:  activity,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if input.FirstName == "" || input.LastName == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email is malformed", domain.ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}
	if _, err := s.faculties.FindByID(ctx, input.FacultyID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		PasswordHash: string(hash),
		FacultyID:    input.FacultyID,
		Role:         domain.RoleStudent,
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(created.ID, domain.ActionRegister, "account created")
	s.log.Info().Str("user_id", created.ID).Str("faculty_id", created.FacultyID).Msg("user registered")

	return s.session(created)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if blocked, err := s.limiter.TooMany(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login limiter check failed, allowing attempt")
	} else if blocked {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			s.recordFailure(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.verifyPassword(ctx, user, password) {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login limiter reset failed")
	}
	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	s.record(user.ID, domain.ActionLogin, "logged in")

	return s.session(user)
}

// verifyPassword compares the supplied password against the stored
// credential. Rows created before the hashing migration hold the plaintext
// password; those compare directly and are upgraded to bcrypt in place on
// the first successful login.
func (s *AuthService) verifyPassword(ctx context.Context, user *domain.User, password string) bool {
	if strings.HasPrefix(user.PasswordHash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
	}

	if user.PasswordHash != password {
		return false
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err == nil {
		if upErr := s.users.UpdatePasswordHash(ctx, user.ID, string(hash)); upErr != nil {
			s.log.Warn().Err(upErr).Str("user_id", user.ID).Msg("failed to upgrade legacy password")
		} else {
			user.PasswordHash = string(hash)
			s.log.Info().Str("user_id", user.ID).Msg("legacy password upgraded to bcrypt")
		}
	}
	return true
}

func (s *AuthService) session(user *domain.User) (*ports.Session, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"role":       string(user.Role),
		"faculty_id": user.FacultyID,
		"exp":        s.now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &ports.Session{
		Token:     signed,
		User:      user,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

func (s *AuthService) record(userID string, action domain.ActivityAction, details string) {
	s.activity.Record(domain.ActivityEntry{
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: s.now().UTC(),
	})
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login limiter record failed")
	}
}
