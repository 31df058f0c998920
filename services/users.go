package services

import (
	"errors"
	"fmt"
	"log"

	"class-quest-system/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles credentials and account creation. Progression state on
// the user row is out of its hands — that belongs to the progression and
// onboarding services.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Authenticate checks name and password. Unknown names and wrong passwords
// both come back as ErrInvalidCredentials.
func (s *UserService) Authenticate(name, password string) (*models.User, error) {
	if name == "" || password == "" {
		return nil, fmt.Errorf("name and password are required: %w", ErrInvalidInput)
	}

	var user models.User
	if err := s.DB.Where("name = ?", name).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// CreateStudent registers a student, optionally into a class.
func (s *UserService) CreateStudent(name, password string, classID *uint) (*models.User, error) {
	if name == "" || password == "" {
		return nil, fmt.Errorf("name and password are required: %w", ErrInvalidInput)
	}

	if classID != nil {
		var class models.Class
		if err := s.DB.First(&class, *classID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("class %d: %w", *classID, ErrNotFound)
			}
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	student := models.User{
		Name:     name,
		Password: string(hash),
		Role:     models.RoleStudent,
		ClassID:  classID,
	}
	if err := s.DB.Create(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("user %q: %w", name, ErrConflict)
		}
		return nil, err
	}
	return &student, nil
}

// ListStudents returns students, optionally filtered by class.
func (s *UserService) ListStudents(classID *uint) ([]models.User, error) {
	q := s.DB.Preload("Character").
		Where("role = ?", models.RoleStudent).
		Order("name ASC")
	if classID != nil {
		q = q.Where("class_id = ?", *classID)
	}
	var students []models.User
	err := q.Find(&students).Error
	return students, err
}

// EnsureAdmin seeds the first admin account from the environment. A no-op
// when any admin already exists or the credentials are blank.
func (s *UserService) EnsureAdmin(name, password string) error {
	if name == "" || password == "" {
		return nil
	}

	var count int64
	if err := s.DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{Name: name, Password: string(hash), Role: models.RoleAdmin}
	if err := s.DB.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("✅ Seeded admin account %q", name)
	return nil
}
