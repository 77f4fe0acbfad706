package service

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/prostore-go/internal/config"
	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserService 用户账户服务：注册、登录与档案维护
type UserService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(cfg *config.Config, userRepo repository.UserRepository) *UserService {
	return &UserService{cfg: cfg, userRepo: userRepo}
}

// JWTClaims JWT 声明
type JWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Register 注册新用户
func (s *UserService) Register(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return nil, ErrInvalidCredentials
	}
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if err := s.validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         constants.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	logger.Infow("user_registered", "user_id", user.ID, "email", email)
	return user, nil
}

// Login 校验凭据并签发 JWT
func (s *UserService) Login(email, password string, rememberMe bool) (*models.User, string, time.Time, error) {
	email = normalizeEmail(email)
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(user, rememberMe)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.userRepo.TouchLastLogin(user.ID); err != nil {
		logger.Warnw("user_touch_last_login_failed", "user_id", user.ID, "error", err)
	}
	logger.Infow("user_logged_in", "user_id", user.ID, "email", email)
	return user, token, expiresAt, nil
}

// GenerateJWT 生成 JWT Token
func (s *UserService) GenerateJWT(user *models.User, rememberMe bool) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if rememberMe && s.cfg.JWT.RememberMeExpireHours > 0 {
		expireHours = s.cfg.JWT.RememberMeExpireHours
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)

	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *UserService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GetProfile 获取用户档案
func (s *UserService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile 更新用户名称
func (s *UserService) UpdateProfile(userID uint, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateAddress 保存收货地址，要求各字段完整
func (s *UserService) UpdateAddress(userID uint, address models.ShippingAddress) (*models.User, error) {
	if !address.IsComplete() {
		return nil, ErrNoShippingAddress
	}
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	user.Address = &address
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePaymentMethod 保存支付方式，必须在支持列表内
func (s *UserService) UpdatePaymentMethod(userID uint, method string) (*models.User, error) {
	method = strings.TrimSpace(method)
	if !constants.IsValidPaymentMethod(method) {
		return nil, ErrPaymentMethodInvalid
	}
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	user.PaymentMethod = method
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers 管理端用户分页列表
func (s *UserService) ListUsers(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// UpdateUser 管理端更新用户名称与角色
func (s *UserService) UpdateUser(userID uint, name, role string) (*models.User, error) {
	role = strings.TrimSpace(role)
	if role != constants.RoleUser && role != constants.RoleAdmin {
		return nil, ErrInvalidCredentials
	}
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	logger.Infow("user_updated_by_admin", "user_id", userID, "role", role)
	return user, nil
}

// DeleteUser 管理端删除用户
func (s *UserService) DeleteUser(userID uint) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(userID)
}

// validatePassword 按策略校验密码
func (s *UserService) validatePassword(password string) error {
	policy := s.cfg.Security.PasswordPolicy
	if len(password) < policy.MinLength {
		return ErrInvalidCredentials
	}
	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}
	if policy.RequireUpper && !hasUpper {
		return ErrInvalidCredentials
	}
	if policy.RequireLower && !hasLower {
		return ErrInvalidCredentials
	}
	if policy.RequireNumber && !hasNumber {
		return ErrInvalidCredentials
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
