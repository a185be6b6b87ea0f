package services

import (
	"context"
	"net/mail"
	"strings"

	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/repository"
	"github.com/yeremiapane/food-ordering-app/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type AuthService struct {
	users     *repository.UserRepository
	tokens    *utils.TokenManager
	blacklist utils.TokenBlacklist
}

func NewAuthService(db *gorm.DB, tokens *utils.TokenManager, blacklist utils.TokenBlacklist) *AuthService {
	return &AuthService{
		users:     repository.NewUserRepository(db),
		tokens:    tokens,
		blacklist: blacklist,
	}
}

type RegisterInput struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role"`
	Phone    string      `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Session is a signed credential plus the user it belongs to.
type Session struct {
	User   *models.User
	Token  string
	Claims *utils.CustomClaims
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", utils.Invalid("Invalid email address")
	}
	return email, nil
}

// Register creates a CUSTOMER or OWNER account and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, utils.Invalid("Name is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, utils.Invalid("Password must be at least %d characters", minPasswordLength)
	}
	if in.Role == "" {
		in.Role = models.RoleCustomer
	}
	if in.Role != models.RoleCustomer && in.Role != models.RoleOwner {
		return nil, utils.Invalid("Invalid role")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, utils.Invalid("User already exists")
	} else if !utils.IsKind(err, utils.KindNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: string(hash),
		Role:     in.Role,
		Phone:    strings.TrimSpace(in.Phone),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if utils.IsDuplicateKey(err) {
			return nil, utils.Invalid("User already exists")
		}
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return nil, utils.Unauthenticated("Invalid email or password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, utils.Unauthenticated("Invalid email or password")
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*Session, error) {
	token, claims, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, Claims: claims}, nil
}

// Authenticate verifies a credential and rejects revoked ones.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*utils.CustomClaims, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, utils.Unauthenticated("Invalid or expired token")
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, utils.Unauthenticated("Token has been revoked")
	}
	return claims, nil
}

// Logout revokes the credential until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *utils.CustomClaims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

type ProfileUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, utils.Invalid("Name cannot be empty")
		}
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email, err := normalizeEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if email != user.Email {
			if _, err := s.users.FindByEmail(ctx, email); err == nil {
				return nil, utils.Invalid("Email already exists")
			} else if !utils.IsKind(err, utils.KindNotFound) {
				return nil, err
			}
			fields["email"] = email
		}
	}
	if in.Phone != nil {
		fields["phone"] = strings.TrimSpace(*in.Phone)
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return nil, utils.Invalid("Password must be at least %d characters", minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		fields["password"] = string(hash)
	}
	if len(fields) == 0 {
		return user, nil
	}

	if err := s.users.Updates(ctx, user, fields); err != nil {
		if utils.IsDuplicateKey(err) {
			return nil, utils.Invalid("Email already exists")
		}
		return nil, err
	}
	return s.users.FindByID(ctx, userID)
}
