package service

import (
	"errors"
	"fmt"
	"time"

	"branch-scheduler/internal/models"
	"branch-scheduler/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService struct {
	userRepo  repository.UserRepository
	groupRepo repository.UserGroupRepository
	jwtSecret string
	logger    *logrus.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	groupRepo repository.UserGroupRepository,
	jwtSecret string,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		groupRepo: groupRepo,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Login checks the credentials and returns a signed bearer token.
func (s *AuthService) Login(username, password string) (string, *models.SystemUser, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"group_id": user.UserGroupID,
		"exp":      now.Add(tokenTTL).Unix(),
		"iat":      now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.logger.WithError(err).Error("Failed to sign token")
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User logged in")
	return tokenString, user, nil
}

// HashPassword wraps bcrypt hashing for the user CRUD path.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// BootstrapAdmin makes sure an administrators group with EDIT on every
// function and an admin account exist, so a fresh database is usable.
func (s *AuthService) BootstrapAdmin(username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	group, err := s.groupRepo.GetByName("Administrators")
	if err != nil {
		return err
	}
	if group == nil {
		permissions := models.PermissionMap{}
		for _, key := range models.KnownFunctionKeys {
			permissions[key] = models.PermissionEdit
		}
		group = &models.UserGroup{Name: "Administrators", Permissions: permissions}
		if err := s.groupRepo.Create(group); err != nil {
			return err
		}
		s.logger.WithField("group_id", group.ID).Info("Administrators group created")
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return err
	}
	if user != nil {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	user = &models.SystemUser{
		Username:     username,
		PasswordHash: hash,
		UserGroupID:  group.ID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return err
	}

	s.logger.WithField("username", username).Info("Admin user bootstrapped")
	return nil
}
