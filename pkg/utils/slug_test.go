package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	// Punctuation passes through; only case and whitespace change. A
	// trailing space becomes a trailing hyphen.
	assert.Equal(t, "super-game!!-", Slugify("  Super Game!! "))
	assert.Equal(t, "gift-cards", Slugify("Gift Cards"))
	assert.Equal(t, "psn-plus-12m", Slugify("PSN   Plus\t12m"))
	assert.Equal(t, "", Slugify("   "))
	assert.Equal(t, "already-a-slug", Slugify("already-a-slug"))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SUMMER2025", NormalizeCode(" summer2025 "))
	assert.Equal(t, "EID-10", NormalizeCode("eid-10"))
}
