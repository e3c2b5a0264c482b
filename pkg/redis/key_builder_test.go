package redis

import "testing"

func TestNewKeyBuilder(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    string
	}{
		{
			name:        "production environment",
			environment: "production",
			expected:    "prod",
		},
		{
			name:        "development environment",
			environment: "development",
			expected:    "staging",
		},
		{
			name:        "staging environment",
			environment: "staging",
			expected:    "staging",
		},
		{
			name:        "test environment",
			environment: "test",
			expected:    "staging",
		},
		{
			name:        "unknown environment defaults to prod",
			environment: "something-else",
			expected:    "prod",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			if kb.GetPrefix() != tt.expected {
				t.Errorf("NewKeyBuilder(%q).GetPrefix() = %q, want %q", tt.environment, kb.GetPrefix(), tt.expected)
			}
		})
	}
}

func TestKeyBuilderKeys(t *testing.T) {
	kb := NewKeyBuilder("production")

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "user profile key",
			got:      kb.KeyUserProfile("abc-123"),
			expected: "prod:users:abc-123:profile",
		},
		{
			name:     "user notes key",
			got:      kb.KeyUserNotes("abc-123"),
			expected: "prod:notes:abc-123:list",
		},
		{
			name:     "raw build key",
			got:      kb.BuildKey("health"),
			expected: "prod:health",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}
