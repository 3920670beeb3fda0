package server_test

import (
	"testing"
	"time"

	"contract-manager/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValidEnvironment(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"Development", server.EnvDevelopment, true},
		{"Production", server.EnvProduction, true},
		{"Invalid", "staging", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Environment: tt.env}
			assert.Equal(t, tt.want, c.IsValidEnvironment())
		})
	}
}

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{Port: "8080"}.Addr())
}

func TestConfig_ReadTimeout(t *testing.T) {
	assert.Equal(t, 15*time.Second, server.Config{}.ReadTimeout())
	assert.Equal(t, 3*time.Second, server.Config{ReadTimeoutSeconds: 3}.ReadTimeout())
}

func TestConfig_RequiresApiKey(t *testing.T) {
	assert.True(t, server.Config{Environment: server.EnvProduction}.RequiresApiKey())
	assert.False(t, server.Config{Environment: server.EnvDevelopment}.RequiresApiKey())
	assert.True(t, server.Config{Environment: server.EnvDevelopment, ApiKey: "k"}.RequiresApiKey())
}
