package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("CFG_TEST_STR", "value")
	assert.Equal(t, "value", GetEnv("CFG_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CFG_TEST_MISSING", "fallback"))

	// empty counts as unset
	t.Setenv("CFG_TEST_EMPTY", "")
	assert.Equal(t, "fallback", GetEnv("CFG_TEST_EMPTY", "fallback"))
}

func TestGetIntEnv(t *testing.T) {
	t.Setenv("CFG_TEST_INT", "42")
	assert.Equal(t, 42, GetIntEnv("CFG_TEST_INT", 10))

	t.Setenv("CFG_TEST_INT", "not a number")
	assert.Equal(t, 10, GetIntEnv("CFG_TEST_INT", 10))
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("CFG_TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, GetDurationEnv("CFG_TEST_DUR", time.Hour))

	t.Setenv("CFG_TEST_DUR", "soon")
	assert.Equal(t, time.Hour, GetDurationEnv("CFG_TEST_DUR", time.Hour))

	assert.Equal(t, time.Hour, GetDurationEnv("CFG_TEST_DUR_MISSING", time.Hour))
}
