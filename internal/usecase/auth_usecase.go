package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthUsecase handles account registration, login and token verification.
type AuthUsecase interface {
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	Verify(ctx context.Context, token string) (*entity.User, error)
	GrantDialects(ctx context.Context, actor *entity.User, userID string, dialects []string) (*entity.User, error)
}

type authUsecase struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
}

type authClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

func NewAuthUsecase(users repository.UserRepository, secret string, ttl time.Duration) AuthUsecase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &authUsecase{users: users, secret: []byte(secret), ttl: ttl}
}

func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	user := &entity.User{
		Name:  strings.TrimSpace(name),
		Email: strings.ToLower(strings.TrimSpace(email)),
		Role:  entity.RoleContributor,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, entity.ErrInvalidCredentials
	}
	if existing, err := u.users.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return nil, entity.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	return u.users.Create(ctx, user)
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return "", nil, entity.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, entity.ErrInvalidCredentials
	}

	now := time.Now()
	claims := authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.ttl)),
		},
		Role: string(user.Role),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (u *authUsecase) Verify(ctx context.Context, token string) (*entity.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, entity.ErrInvalidToken
	}

	var claims authClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, entity.ErrInvalidToken
		}
		return u.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, entity.ErrInvalidToken
	}
	return u.users.GetByID(ctx, claims.Subject)
}

// GrantDialects replaces a contributor's dialect grants. Admin only.
func (u *authUsecase) GrantDialects(ctx context.Context, actor *entity.User, userID string, dialects []string) (*entity.User, error) {
	if actor == nil || actor.Role != entity.RoleAdmin {
		return nil, entity.ErrPermissionDenied
	}
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Dialects = entity.NormalizeStringSlice(dialects)
	return u.users.Update(ctx, user)
}
