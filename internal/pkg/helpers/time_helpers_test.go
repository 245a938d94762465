package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Second))
	assert.Equal(t, 5*time.Minute, ParseDuration("", 5*time.Minute))
	assert.Equal(t, time.Hour, ParseDuration("soon", time.Hour))
}
