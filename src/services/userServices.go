package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/analisys/biblioteca-circulacion/src/middleware"
	"github.com/analisys/biblioteca-circulacion/src/models"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type UserService struct {
	db     *gorm.DB
	tokens *middleware.TokenManager
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB, tokens *middleware.TokenManager) *UserService {
	return &UserService{db: db, tokens: tokens}
}

// GetAllUsers retrieves all User records from the database
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.UserModel, error) {
	var users []models.UserModel
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser hashes the password and stores the user with normalized roles
func (s *UserService) CreateUser(ctx context.Context, username, password string, roles []string) (*models.UserModel, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.UserModel{
		Username: username,
		Password: string(hashedPassword),
		Roles:    JoinRoles(roles),
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByUsername returns the user or gorm.ErrRecordNotFound
func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser checks user credentials and returns a JWT token if valid
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (string, error) {
	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.Id, user.Username, user.RoleList())
}

// JoinRoles normalizes and de-duplicates roles for storage.
func JoinRoles(roles []string) string {
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		n := middleware.NormalizeRole(r)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return strings.Join(out, ",")
}
