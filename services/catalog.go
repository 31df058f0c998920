package services

import (
	"errors"
	"fmt"

	"class-quest-system/models"

	"gorm.io/gorm"
)

// CatalogService owns the admin catalogs: classes, missions, levels,
// characters and bonus cards. Catalog rows are created and deleted, never
// updated — a mission's reward stays fixed once it exists.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func (s *CatalogService) CreateClass(name string) (*models.Class, error) {
	if name == "" {
		return nil, fmt.Errorf("class name is required: %w", ErrInvalidInput)
	}
	class := models.Class{Name: name}
	if err := s.DB.Create(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("class %q: %w", name, ErrConflict)
		}
		return nil, err
	}
	return &class, nil
}

func (s *CatalogService) ListClasses() ([]models.Class, error) {
	var classes []models.Class
	err := s.DB.Order("name ASC").Find(&classes).Error
	return classes, err
}

func (s *CatalogService) CreateMission(title, description string, xpReward int64, requiresUpload bool, imageURL *string) (*models.Mission, error) {
	if title == "" || xpReward < 0 {
		return nil, fmt.Errorf("mission needs a title and a non-negative reward: %w", ErrInvalidInput)
	}
	mission := models.Mission{
		Title:          title,
		Description:    description,
		XPReward:       xpReward,
		RequiresUpload: requiresUpload,
		ImageURL:       imageURL,
	}
	if err := s.DB.Create(&mission).Error; err != nil {
		return nil, err
	}
	return &mission, nil
}

func (s *CatalogService) ListMissions() ([]models.Mission, error) {
	var missions []models.Mission
	err := s.DB.Order("id DESC").Find(&missions).Error
	return missions, err
}

func (s *CatalogService) DeleteMission(id uint) error {
	return s.deleteByID(&models.Mission{}, id, "mission")
}

func (s *CatalogService) CreateBonusCard(title, text string, xpCost int64, imageURL *string) (*models.BonusCard, error) {
	if title == "" || xpCost < 0 {
		return nil, fmt.Errorf("bonus card needs a title and a non-negative cost: %w", ErrInvalidInput)
	}
	card := models.BonusCard{Title: title, Text: text, XPCost: xpCost, ImageURL: imageURL}
	if err := s.DB.Create(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *CatalogService) ListBonusCards() ([]models.BonusCard, error) {
	var cards []models.BonusCard
	err := s.DB.Order("id DESC").Find(&cards).Error
	return cards, err
}

func (s *CatalogService) DeleteBonusCard(id uint) error {
	return s.deleteByID(&models.BonusCard{}, id, "bonus card")
}

func (s *CatalogService) CreateCharacter(name string, imageURL *string) (*models.Character, error) {
	if name == "" {
		return nil, fmt.Errorf("character name is required: %w", ErrInvalidInput)
	}
	character := models.Character{Name: name, ImageURL: imageURL}
	if err := s.DB.Create(&character).Error; err != nil {
		return nil, err
	}
	return &character, nil
}

func (s *CatalogService) ListCharacters() ([]models.Character, error) {
	var characters []models.Character
	err := s.DB.Order("id DESC").Find(&characters).Error
	return characters, err
}

func (s *CatalogService) DeleteCharacter(id uint) error {
	return s.deleteByID(&models.Character{}, id, "character")
}

func (s *CatalogService) CreateLevel(name string, xpRequired int64, reward *string) (*models.Level, error) {
	if name == "" || xpRequired < 0 {
		return nil, fmt.Errorf("level needs a name and a non-negative threshold: %w", ErrInvalidInput)
	}
	level := models.Level{Name: name, XPRequired: xpRequired, Reward: reward}
	if err := s.DB.Create(&level).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

func (s *CatalogService) ListLevels() ([]models.Level, error) {
	var levels []models.Level
	err := s.DB.Order("xp_required ASC").Find(&levels).Error
	return levels, err
}

func (s *CatalogService) DeleteLevel(id uint) error {
	return s.deleteByID(&models.Level{}, id, "level")
}

func (s *CatalogService) deleteByID(model interface{}, id uint, kind string) error {
	res := s.DB.Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return nil
}
