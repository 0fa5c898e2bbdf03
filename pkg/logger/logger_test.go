package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log, err := New(Config{Level: "debug", Encoding: "json"})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "shouting"})
	require.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	log, err := New(Config{Level: "info"})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestGet(t *testing.T) {
	log := Get()
	assert.NotNil(t, log)
	// Get is stable once resolved.
	assert.Same(t, log, Get())
}
