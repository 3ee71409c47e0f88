package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCliParams(t *testing.T) {
	got := NewCliParams()
	assert.Equal(t, &Run{}, got)
}

func TestContextRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		ctx    func() context.Context
		wantOk bool
	}{
		{
			name: "with settings",
			ctx: func() context.Context {
				return IntoContext(context.Background(), &Run{NoColor: true, ConfigPath: "cfg.yaml"})
			},
			wantOk: true,
		},
		{
			name:   "without settings",
			ctx:    context.Background,
			wantOk: false,
		},
		{
			name: "wrong type",
			ctx: func() context.Context {
				return context.WithValue(context.Background(), settingsContextKey, "nope")
			},
			wantOk: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromContext(tt.ctx())
			assert.Equal(t, tt.wantOk, ok)
			if !tt.wantOk {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.NoColor)
			assert.Equal(t, "cfg.yaml", got.ConfigPath)
		})
	}
}
