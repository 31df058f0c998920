package models

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestOnboardingStatus(t *testing.T) {
	charID := uint(4)
	traits := pq.StringArray{"Brave", "Curious", "Logical"}
	items := pq.StringArray{"Rune Stone", "Ancient Key", "Old Lantern"}

	tests := []struct {
		name string
		user User
		want OnboardingStatus
	}{
		{"fresh student", User{}, OnboardingNotStarted},
		{"fully assigned", User{CharacterID: &charID, Traits: traits, Items: items}, OnboardingCompleted},
		{"assigned without character", User{Traits: traits, Items: items}, OnboardingCompleted},
		{"character only", User{CharacterID: &charID}, OnboardingNotStarted},
		{"missing items", User{CharacterID: &charID, Traits: traits}, OnboardingNotStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.OnboardingStatus())
		})
	}
}

func TestCatalogsLargeEnoughForDraws(t *testing.T) {
	assert.GreaterOrEqual(t, len(TraitCatalog), 3)
	assert.GreaterOrEqual(t, len(ItemCatalog), 3)
}
