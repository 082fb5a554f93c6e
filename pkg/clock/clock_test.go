package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	c := Fixed(at)
	assert.Equal(t, at, c.Now())
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Today(c))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 11, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 10, DaysBetween(a, b))
	assert.Equal(t, -10, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}
