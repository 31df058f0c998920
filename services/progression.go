package services

import (
	"fmt"
	"log"

	"class-quest-system/models"

	"gorm.io/gorm"
)

// XPTarget selects who receives a grant: exactly one of the three fields
// must be populated.
type XPTarget struct {
	StudentID  *uint
	ClassID    *uint
	StudentIDs []uint
}

// GrantFailure reports a single student that could not be updated during a
// batch grant. Failures never roll back siblings.
type GrantFailure struct {
	StudentID uint   `json:"student_id"`
	Reason    string `json:"reason"`
}

type ProgressionService struct {
	DB *gorm.DB
}

func NewProgressionService(db *gorm.DB) *ProgressionService {
	return &ProgressionService{DB: db}
}

// ApplyXP grants amount to every student the target resolves to. When
// missionID is set the mission's stored reward replaces amount — the reward
// is catalog-defined, not caller-defined. A missing mission is fatal to the
// whole grant; a missing student only fails that one target.
func (s *ProgressionService) ApplyXP(target XPTarget, amount int64, missionID *uint) ([]uint, []GrantFailure, error) {
	reason := "manual_grant"
	if missionID != nil {
		var mission models.Mission
		if err := s.DB.First(&mission, *missionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, nil, fmt.Errorf("mission %d: %w", *missionID, ErrNotFound)
			}
			return nil, nil, err
		}
		amount = mission.XPReward
		reason = fmt.Sprintf("mission_%d", mission.ID)
	}

	ids, err := s.resolveTarget(target)
	if err != nil {
		return nil, nil, err
	}

	var updated []uint
	var failures []GrantFailure
	for _, id := range ids {
		if err := s.grantOne(id, amount, missionID, reason); err != nil {
			failures = append(failures, GrantFailure{StudentID: id, Reason: err.Error()})
			continue
		}
		updated = append(updated, id)
	}

	log.Printf("🎓 XP applied: amount=%d targets=%d updated=%d failed=%d (reason: %s)",
		amount, len(ids), len(updated), len(failures), reason)
	return updated, failures, nil
}

func (s *ProgressionService) resolveTarget(target XPTarget) ([]uint, error) {
	switch {
	case target.StudentID != nil:
		return []uint{*target.StudentID}, nil
	case target.ClassID != nil:
		var class models.Class
		if err := s.DB.First(&class, *target.ClassID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("class %d: %w", *target.ClassID, ErrNotFound)
			}
			return nil, err
		}
		// Membership is read at grant time; students joining later are
		// unaffected by this grant.
		var ids []uint
		err := s.DB.Model(&models.User{}).
			Where("class_id = ? AND role = ?", class.ID, models.RoleStudent).
			Pluck("id", &ids).Error
		return ids, err
	case len(target.StudentIDs) > 0:
		return target.StudentIDs, nil
	default:
		return nil, fmt.Errorf("empty grant target: %w", ErrInvalidInput)
	}
}

// grantOne applies a single read-modify-write to one student row plus the
// matching grant-log append. The watermark is computed against the
// post-update XP inside the UPDATE itself, so highest_xp >= xp holds for
// gains and losses alike.
func (s *ProgressionService) grantOne(studentID uint, amount int64, missionID *uint, reason string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND role = ?", studentID, models.RoleStudent).
			Updates(map[string]interface{}{
				"xp":         gorm.Expr("xp + ?", amount),
				"highest_xp": gorm.Expr("GREATEST(highest_xp, xp + ?)", amount),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("student %d: %w", studentID, ErrNotFound)
		}

		return tx.Create(&models.XPTransaction{
			UserID:    studentID,
			Amount:    amount,
			MissionID: missionID,
			Reason:    reason,
		}).Error
	})
}

// CurrentLevel picks the level with the largest threshold not exceeding xp.
// Nil when the catalog is empty or every threshold is above xp.
func CurrentLevel(levels []models.Level, xp int64) *models.Level {
	var best *models.Level
	for i := range levels {
		l := &levels[i]
		if l.XPRequired > xp {
			continue
		}
		if best == nil || l.XPRequired > best.XPRequired {
			best = l
		}
	}
	return best
}

// Progress loads a student with their character and derives the current
// level from the catalog. The level is recomputed on every call — the
// catalog can change independently of the student row.
func (s *ProgressionService) Progress(studentID uint) (*models.User, *models.Level, error) {
	var student models.User
	err := s.DB.Preload("Character").
		Where("id = ? AND role = ?", studentID, models.RoleStudent).
		First(&student).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, fmt.Errorf("student %d: %w", studentID, ErrNotFound)
		}
		return nil, nil, err
	}

	var levels []models.Level
	if err := s.DB.Find(&levels).Error; err != nil {
		return nil, nil, err
	}

	return &student, CurrentLevel(levels, student.XP), nil
}
