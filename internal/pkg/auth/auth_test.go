package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		need  Permission
		want  bool
	}{
		{name: "admin wildcard", roles: []string{"admin"}, need: PermConnectionDelete, want: true},
		{name: "op resource wildcard", roles: []string{"op"}, need: PermConnectionEdit, want: true},
		{name: "viewer can read", roles: []string{"viewer"}, need: PermConnectionRead, want: true},
		{name: "viewer cannot create", roles: []string{"viewer"}, need: PermConnectionCreate, want: false},
		{name: "unknown role", roles: []string{"guest"}, need: PermConnectionRead, want: false},
		{name: "no roles", roles: nil, need: PermConnectionRead, want: false},
		{name: "merged roles", roles: []string{"guest", "viewer", "op"}, need: PermConnectionCreate, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allow(tt.roles, tt.need))
		})
	}
}

func TestMatch(t *testing.T) {
	assert.True(t, match("connection:*", "connection:read"))
	assert.True(t, match("*:read", "connection:read"))
	assert.False(t, match("*:read", "connection:edit"))
	assert.False(t, match("variable:*", "connection:read"))
	assert.False(t, match("connection:read", "connection:read:extra"))
	assert.True(t, match("connection:*", "connection:read:extra"))
}
