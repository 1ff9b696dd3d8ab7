package main

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/infrastructure/config"
)

func TestRunRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "auth without secret",
			cfg:  config.Config{AuthEnabled: true, DatabaseIsolationLevel: "read_committed"},
			want: "JWT_SECRET",
		},
		{
			name: "unknown isolation level",
			cfg:  config.Config{DatabaseIsolationLevel: "chaotic"},
			want: "isolation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(context.Background(), &tt.cfg, zerolog.Nop())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
