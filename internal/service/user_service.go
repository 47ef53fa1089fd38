package service

import (
	"context"
	"culturefit_backend/internal/model"
	"culturefit_backend/internal/repository"
	"culturefit_backend/internal/util"
	"culturefit_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService covers admin-side account management: adding recruiter
// or admin accounts with an emailed temporary password, and disabling
// accounts instead of deleting them.
type UserService struct {
	Repo *repository.UserRepository
	Mail *MailService
}

func NewUserService(repo *repository.UserRepository, mail *MailService) *UserService {
	return &UserService{Repo: repo, Mail: mail}
}

type AddUserRequest struct {
	Name  string         `json:"name" binding:"required"`
	Email string         `json:"email" binding:"required"`
	Role  model.UserRole `json:"role" binding:"required"`
}

func (s *UserService) AddUser(ctx context.Context, req AddUserRequest) (*model.User, error) {
	email := util.NormalizeEmail(req.Email)
	if !util.ValidEmail(email) {
		return nil, util.ErrInvalidEmail
	}

	if _, err := s.Repo.FindByEmail(email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	// Random one-time password; the welcome mail tells the user to
	// change it on first login.
	tempPassword := uuid.New().String()[:12]
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    email,
		Password: string(hashed),
		Role:     req.Role,
	}
	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}

	if err := s.Mail.SendAdminWelcome(ctx, email, tempPassword); err != nil {
		logger.Log.Warn("welcome email failed",
			zap.String("email", email),
			zap.Error(err))
	}

	return user, nil
}

func (s *UserService) DisableUser(id uint) error {
	if _, err := s.Repo.FindByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrUserNotFound
		}
		return err
	}
	return s.Repo.SetDisabled(id, true)
}

func (s *UserService) List(page, limit int) ([]model.User, int64, error) {
	return s.Repo.List(page, limit)
}
