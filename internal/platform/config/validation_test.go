package config

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully valid configuration for testing.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "test-service",
			Version:     "1.0.0",
			Environment: "local",
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestSize:  1048576,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Walks: WalksConfig{
			TrailCap:      512,
			SessionTTL:    2 * time.Hour,
			SweepInterval: 5 * time.Minute,
		},
		Render: RenderConfig{
			Size: 480,
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestConfig_Validate_AppConfig(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Name = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.name")
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("missing version", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Version = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.version")
	})

	t.Run("missing environment", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Environment = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.environment")
	})

	t.Run("invalid environment", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Environment = "invalid"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.environment")
		assert.Contains(t, err.Error(), "must be one of")
	})
}

func TestConfig_Validate_ValidEnvironments(t *testing.T) {
	validEnvs := []string{"local", "dev", "qa", "prod", "test"}

	for _, env := range validEnvs {
		t.Run(env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = env

			err := cfg.Validate()
			assert.NoError(t, err)
		})
	}
}

func TestConfig_Validate_ServerConfig(t *testing.T) {
	t.Run("valid port range", func(t *testing.T) {
		tests := []struct {
			name    string
			port    int
			wantErr bool
		}{
			{"minimum valid port", 1, false},
			{"typical port", 8080, false},
			{"maximum valid port", 65535, false},
			{"zero port", 0, true},
			{"negative port", -1, true},
			{"port too high", 65536, true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := validConfig()
				cfg.Server.Port = tt.port

				err := cfg.Validate()
				if tt.wantErr {
					assert.Error(t, err)
					assert.Contains(t, err.Error(), "server.port")
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Host = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.host")
	})

	t.Run("timeout minimum", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.ReadTimeout = 500 * time.Millisecond // Less than 1s minimum

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.readtimeout")
	})

	t.Run("max request size minimum", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.MaxRequestSize = 0

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.maxrequestsize")
	})
}

func TestConfig_Validate_LogConfig(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		levels := []string{"trace", "debug", "info", "warn", "error"}
		for _, level := range levels {
			t.Run(level, func(t *testing.T) {
				cfg := validConfig()
				cfg.Log.Level = level

				err := cfg.Validate()
				assert.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.Level = "invalid"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.level")
		assert.Contains(t, err.Error(), "must be one of")
	})

	t.Run("case sensitive log level", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.Level = "DEBUG" // Should be lowercase

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.level")
	})

	t.Run("valid log formats", func(t *testing.T) {
		formats := []string{"json", "text", "pretty"}
		for _, format := range formats {
			t.Run(format, func(t *testing.T) {
				cfg := validConfig()
				cfg.Log.Format = format

				err := cfg.Validate()
				assert.NoError(t, err)
			})
		}
	})

	t.Run("invalid log format", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.Format = "xml"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.format")
	})
}

func TestConfig_Validate_LogFileConfig(t *testing.T) {
	t.Run("file logging disabled - path not required", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.File.Enabled = false
		cfg.Log.File.Path = ""

		err := cfg.Validate()
		assert.NoError(t, err)
	})

	t.Run("file logging enabled - path required", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.File.Enabled = true
		cfg.Log.File.Path = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.file.path")
	})

	t.Run("file logging enabled with valid config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.File.Enabled = true
		cfg.Log.File.Path = "/var/log/app.log"
		cfg.Log.File.MaxSizeMB = 100
		cfg.Log.File.MaxBackups = 3
		cfg.Log.File.MaxAgeDays = 28

		err := cfg.Validate()
		assert.NoError(t, err)
	})

	t.Run("max size bounds", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.File.Enabled = true
		cfg.Log.File.Path = "/var/log/app.log"
		cfg.Log.File.MaxSizeMB = 1025 // Exceeds max of 1024

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.file.maxsize")
	})
}

func TestConfig_Validate_TelemetryConfig(t *testing.T) {
	t.Run("telemetry disabled - endpoint not required", func(t *testing.T) {
		cfg := validConfig()
		cfg.Telemetry.Enabled = false
		cfg.Telemetry.Endpoint = ""

		err := cfg.Validate()
		assert.NoError(t, err)
	})

	t.Run("telemetry enabled - endpoint required", func(t *testing.T) {
		cfg := validConfig()
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Endpoint = ""
		cfg.Telemetry.ServiceName = "test"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.endpoint")
	})

	t.Run("telemetry enabled - service name required", func(t *testing.T) {
		cfg := validConfig()
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Endpoint = "http://localhost:4317"
		cfg.Telemetry.ServiceName = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.servicename")
	})

	t.Run("telemetry enabled - invalid endpoint URL", func(t *testing.T) {
		cfg := validConfig()
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Endpoint = "not-a-url"
		cfg.Telemetry.ServiceName = "test"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.endpoint")
	})

	t.Run("telemetry enabled with valid config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Endpoint = "http://localhost:4317"
		cfg.Telemetry.ServiceName = "test-service"
		cfg.Telemetry.SamplingRate = 0.5

		err := cfg.Validate()
		assert.NoError(t, err)
	})

	t.Run("sampling rate bounds", func(t *testing.T) {
		tests := []struct {
			rate    float64
			wantErr bool
		}{
			{0.0, false},
			{0.5, false},
			{1.0, false},
			{-0.1, true},
			{1.1, true},
		}

		for _, tt := range tests {
			t.Run(fmt.Sprintf("rate_%v", tt.rate), func(t *testing.T) {
				cfg := validConfig()
				cfg.Telemetry.SamplingRate = tt.rate

				err := cfg.Validate()
				if tt.wantErr {
					assert.Error(t, err)
					assert.Contains(t, err.Error(), "telemetry.samplingrate")
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

//nolint:dupl // Test functions with similar structure are acceptable
func TestConfig_Validate_WalksConfig(t *testing.T) {
	t.Run("trail cap bounds", func(t *testing.T) {
		tests := []struct {
			cap     int
			wantErr bool
		}{
			{2, false},
			{512, false},
			{65536, false},
			{1, true},
			{0, true},
			{65537, true},
		}

		for _, tt := range tests {
			t.Run(fmt.Sprintf("cap_%d", tt.cap), func(t *testing.T) {
				cfg := validConfig()
				cfg.Walks.TrailCap = tt.cap

				err := cfg.Validate()
				if tt.wantErr {
					assert.Error(t, err)
					assert.Contains(t, err.Error(), "walks.trailcap")
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("session ttl minimum", func(t *testing.T) {
		cfg := validConfig()
		cfg.Walks.SessionTTL = 30 * time.Second // Less than 1m minimum

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "walks.sessionttl")
	})

	t.Run("sweep interval minimum", func(t *testing.T) {
		cfg := validConfig()
		cfg.Walks.SweepInterval = 500 * time.Millisecond // Less than 1s minimum

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "walks.sweepinterval")
	})
}

func TestConfig_Validate_RenderConfig(t *testing.T) {
	t.Run("size bounds", func(t *testing.T) {
		tests := []struct {
			size    int
			wantErr bool
		}{
			{120, false},
			{480, false},
			{1600, false},
			{0, true},
			{119, true},
			{1601, true},
		}

		for _, tt := range tests {
			t.Run(fmt.Sprintf("size_%d", tt.size), func(t *testing.T) {
				cfg := validConfig()
				cfg.Render.Size = tt.size

				err := cfg.Validate()
				if tt.wantErr {
					assert.Error(t, err)
					assert.Contains(t, err.Error(), "render.size")
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := &Config{
		App: AppConfig{
			Name:        "",        // missing
			Version:     "",        // missing
			Environment: "invalid", // invalid
		},
		Server: ServerConfig{
			Port: -1, // invalid
		},
		// Other fields will fail required validation
	}

	err := cfg.Validate()
	require.Error(t, err)

	// Should report multiple errors
	errStr := err.Error()
	assert.Contains(t, errStr, "app.name")
	assert.Contains(t, errStr, "app.version")
}

func TestFormatFieldPath(t *testing.T) {
	tests := []struct {
		namespace string
		expected  string
	}{
		{"Config.Server.Port", "server.port"},
		{"Config.App.Name", "app.name"},
		{"Config.Walks.TrailCap", "walks.trailcap"},
		{"Config.Log.File.Path", "log.file.path"},
		{"Config.Telemetry.SamplingRate", "telemetry.samplingrate"},
	}

	for _, tt := range tests {
		t.Run(tt.namespace, func(t *testing.T) {
			result := formatFieldPath(tt.namespace)
			assert.Equal(t, tt.expected, result)
		})
	}
}
