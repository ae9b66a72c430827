package service

import (
	"gradebook/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// InsertResult describes the outcome of an insert.
type InsertResult struct {
	ID           uint  `json:"id"`
	RowsAffected int64 `json:"rowsAffected"`
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) ListUsers() ([]model.User, error) {
	users := []model.User{}
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "listing users")
	}
	return users, nil
}

func (s *UserService) CreateUser(name string, age int) (InsertResult, error) {
	user := model.User{Name: name, Age: age}
	res := s.db.Create(&user)
	if res.Error != nil {
		return InsertResult{}, errors.Wrap(res.Error, "inserting user")
	}
	return InsertResult{ID: user.ID, RowsAffected: res.RowsAffected}, nil
}
