package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKey_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	d := time.Date(2024, 3, 2, 5, 0, 0, 0, loc) // 2024-03-01 19:00 UTC
	assert.Equal(t, "2024-03-01", DateKey(d))
}

func TestSeed(t *testing.T) {
	morning := time.Date(2024, 3, 1, 0, 5, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 1, 23, 55, 0, 0, time.UTC)
	tomorrow := morning.Add(24 * time.Hour)

	assert.Equal(t, Seed(morning, "salt"), Seed(evening, "salt"), "same day, same board")
	assert.NotEqual(t, Seed(morning, "salt"), Seed(tomorrow, "salt"))
	assert.NotEqual(t, Seed(morning, "salt"), Seed(morning, "pepper"))
}
