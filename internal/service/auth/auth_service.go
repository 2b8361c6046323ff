package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
	"github.com/veritlyapp-cell/liah-backend/internal/repository"
	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
)

// JWT Claims
type Claims struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	HoldingID string `json:"holdingId"`
	jwt.RegisteredClaims
}

type AuthService struct {
	repo      *repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(repo *repository.UserRepository, jwtSecret string, tokenExpiryHours int) *AuthService {
	key := []byte(jwtSecret)
	if len(key) == 0 {
		// Development fallback only; production config must set a secret.
		key = []byte("liah-dev-jwt-secret-do-not-use-in-production")
	}
	if tokenExpiryHours <= 0 {
		tokenExpiryHours = 24
	}
	return &AuthService{
		repo:      repo,
		jwtSecret: key,
		tokenTTL:  time.Duration(tokenExpiryHours) * time.Hour,
	}
}

// Login authenticates with username and password.
func (s *AuthService) Login(req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.repo.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid username or password")
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if !user.IsActive() {
		return nil, errors.New("account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid username or password")
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.repo.Update(user); err != nil {
		logger.Warnf("Cannot update last login for %s: %v", user.ID, err)
	}

	return &model.LoginResponse{Token: token, User: user}, nil
}

// GenerateToken issues a signed JWT for the user.
func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	claims := &Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		HoldingID: user.HoldingID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "liah",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and verifies a JWT.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// CreateUser registers a new account (admin operation).
func (s *AuthService) CreateUser(req *model.CreateUserRequest) (*model.User, error) {
	if _, err := s.repo.FindByUsername(req.Username); err == nil {
		return nil, errors.New("username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if !validRole(req.Role) {
		return nil, fmt.Errorf("invalid role: %s", req.Role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:        uuid.New().String(),
		Username:  req.Username,
		Password:  string(hashed),
		Email:     req.Email,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Role:      req.Role,
		HoldingID: req.HoldingID,
		AreaID:    req.AreaID,
		StoreID:   req.StoreID,
		Status:    model.UserStatusActive,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// UpdateUser updates profile and role fields; username and password are
// untouched.
func (s *AuthService) UpdateUser(id string, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	if req.Role != "" {
		if !validRole(req.Role) {
			return nil, fmt.Errorf("invalid role: %s", req.Role)
		}
		user.Role = req.Role
	}
	if req.Status != "" {
		if req.Status != model.UserStatusActive && req.Status != model.UserStatusDisabled {
			return nil, fmt.Errorf("invalid status: %s", req.Status)
		}
		user.Status = req.Status
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	user.AreaID = req.AreaID
	user.StoreID = req.StoreID

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword replaces a user's password (admin operation).
func (s *AuthService) ResetPassword(id, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if _, err := s.repo.FindByID(id); err != nil {
		return errors.New("user not found")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(id, string(hashed))
}

func (s *AuthService) GetUserByID(id string) (*model.User, error) {
	return s.repo.FindByID(id)
}

func (s *AuthService) ListUsers(holdingID string, page, pageSize int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.ListByHolding(holdingID, page, pageSize)
}

func (s *AuthService) DeleteUser(id string) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return errors.New("user not found")
	}
	return s.repo.Delete(id)
}

func validRole(role string) bool {
	switch role {
	case model.RoleAdmin, model.RoleHoldingAdmin, model.RoleGerente,
		model.RoleAreaManager, model.RoleStoreManager,
		model.RoleRecruiter, model.RoleRecruitmentLead:
		return true
	}
	return false
}
