package handler

import (
	"testing"

	"github.com/MKhiriev/mission-control/internal/config"
	"github.com/MKhiriev/mission-control/internal/logger"
	"github.com/MKhiriev/mission-control/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.ServerConfig
		wantErr error
	}{
		{
			name: "address and document",
			cfg:  &config.ServerConfig{HTTPAddress: ":8080", ConfigFile: "config.json"},
		},
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: errNoHandlersAreCreated,
		},
		{
			name:    "no address",
			cfg:     &config.ServerConfig{ConfigFile: "config.json"},
			wantErr: errNoHandlersAreCreated,
		},
		{
			name:    "no document",
			cfg:     &config.ServerConfig{HTTPAddress: ":8080"},
			wantErr: errNoConfigDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandlers(tt.cfg, models.AppBuildInfo{}, logger.Nop())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, h.HTTP)
		})
	}
}
