package service

import (
	"errors"
	"fmt"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/util"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) GetUsers(page, limit int, role, search string) ([]model.User, int64, error) {
	return s.UserRepo.List(page, limit, role, search)
}

func (s *UserService) UpdateProfile(userID uint, name, avatar string) (*model.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if avatar != "" {
		user.Avatar = avatar
	}
	user.UpdatedAt = time.Now()

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DisableUser(id uint, disable bool) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	user.Disabled = disable
	user.UpdatedAt = time.Now()

	return s.UserRepo.Update(user)
}

// ResetPassword sets a temporary password and returns it in plain text so
// an admin can hand it over out of band.
func (s *UserService) ResetPassword(userID uint) (string, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return "", err
	}

	tempPassword := generateTempPassword()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user.Password = string(hashedPassword)
	user.UpdatedAt = time.Now()

	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}

	return tempPassword, nil
}

func generateTempPassword() string {
	return fmt.Sprintf("temp%d", time.Now().UnixNano()%100000000)
}
