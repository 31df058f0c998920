package services

import (
	"fmt"
	"math/rand"

	"class-quest-system/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// OnboardingResult is what the first-login endpoint returns. AlreadyDone is
// true when the student had been assigned before and nothing was written.
type OnboardingResult struct {
	Character   *models.Character `json:"character"`
	Traits      []string          `json:"traits"`
	Items       []string          `json:"items"`
	AlreadyDone bool              `json:"skip"`
}

// OnboardingService performs the one-time character/traits/items assignment.
// The random source is injected so tests can pin the draws.
type OnboardingService struct {
	DB  *gorm.DB
	rng *rand.Rand
}

func NewOnboardingService(db *gorm.DB, rng *rand.Rand) *OnboardingService {
	return &OnboardingService{DB: db, rng: rng}
}

// EnsureOnboarded assigns a random character plus three distinct traits and
// items on the student's first call and is a read-only no-op afterwards.
// The write is a compare-and-set on the unassigned traits column, so two
// racing first calls resolve to a single winner and the triple is written
// exactly once even when the character catalog is empty.
func (s *OnboardingService) EnsureOnboarded(studentID uint) (*OnboardingResult, error) {
	var student models.User
	err := s.DB.Where("id = ? AND role = ?", studentID, models.RoleStudent).
		First(&student).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("student %d: %w", studentID, ErrNotFound)
		}
		return nil, err
	}

	if student.OnboardingStatus() == models.OnboardingCompleted {
		return s.existingResult(&student)
	}

	character, err := s.drawCharacter()
	if err != nil {
		return nil, err
	}
	traits := drawDistinct(s.rng, models.TraitCatalog, 3)
	items := drawDistinct(s.rng, models.ItemCatalog, 3)

	updates := map[string]interface{}{
		"character_id": nil,
		"traits":       pq.StringArray(traits),
		"items":        pq.StringArray(items),
	}
	if character != nil {
		updates["character_id"] = character.ID
	}

	res := s.DB.Model(&models.User{}).
		Where("id = ? AND traits IS NULL", student.ID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// A concurrent first login won the compare-and-set; return what it
		// wrote instead of our wasted draw.
		if err := s.DB.First(&student, student.ID).Error; err != nil {
			return nil, err
		}
		return s.existingResult(&student)
	}

	return &OnboardingResult{
		Character:   character,
		Traits:      traits,
		Items:       items,
		AlreadyDone: false,
	}, nil
}

func (s *OnboardingService) existingResult(student *models.User) (*OnboardingResult, error) {
	var character *models.Character
	if student.CharacterID != nil {
		var c models.Character
		err := s.DB.First(&c, *student.CharacterID).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			// The character was deleted from the catalog after assignment.
			// The student keeps their traits and items; the character is
			// simply gone.
		case err != nil:
			return nil, err
		default:
			character = &c
		}
	}
	return &OnboardingResult{
		Character:   character,
		Traits:      student.Traits,
		Items:       student.Items,
		AlreadyDone: true,
	}, nil
}

// drawCharacter picks uniformly from the character catalog. An empty catalog
// yields nil — onboarding proceeds without a character.
func (s *OnboardingService) drawCharacter() (*models.Character, error) {
	var characters []models.Character
	if err := s.DB.Find(&characters).Error; err != nil {
		return nil, err
	}
	if len(characters) == 0 {
		return nil, nil
	}
	return &characters[s.rng.Intn(len(characters))], nil
}

// drawDistinct takes n distinct entries from pool, uniformly without
// replacement. Pools smaller than n are returned whole.
func drawDistinct(rng *rand.Rand, pool []string, n int) []string {
	picks := make([]string, len(pool))
	copy(picks, pool)
	rng.Shuffle(len(picks), func(i, j int) {
		picks[i], picks[j] = picks[j], picks[i]
	})
	if n > len(picks) {
		n = len(picks)
	}
	return picks[:n]
}
