package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestGetEnvAsInt tests the getEnvAsInt helper function
func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"valid integer", "100", 100},
		{"negative integer", "-10", -10},
		{"zero", "0", 0},
		{"invalid falls back", "not-a-number", 42},
		{"float falls back", "42.5", 42},
		{"empty falls back", "", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsInt("TEST_INT_VAR", 42))
		})
	}
}

// TestGetEnvAsDuration tests the getEnvAsDuration helper function
func TestGetEnvAsDuration(t *testing.T) {
	t.Run("parses duration", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "90s")
		assert.Equal(t, 90*time.Second, getEnvAsDuration("TEST_DURATION_VAR", time.Minute))
	})

	t.Run("falls back on invalid duration", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "soon")
		assert.Equal(t, time.Minute, getEnvAsDuration("TEST_DURATION_VAR", time.Minute))
	})

	t.Run("falls back when empty", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "")
		assert.Equal(t, time.Minute, getEnvAsDuration("TEST_DURATION_VAR", time.Minute))
	})
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("TEST_LIST_VAR", " a ,b,, c ")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsList("TEST_LIST_VAR"))

	t.Setenv("TEST_LIST_VAR", "")
	assert.Nil(t, getEnvAsList("TEST_LIST_VAR"))
}
