package runtime

import (
	"strings"
	"testing"
	"time"
)

// Test configs for various scenarios

type BasicConfig struct {
	Name    string `yaml:"name" default:"default-name"`
	Retries int    `yaml:"retries" default:"3"`
	Enabled bool   `yaml:"enabled" default:"true"`
}

type EndpointConfig struct {
	BaseURL string        `yaml:"base_url" default:"https://api.example.com/v2" validate:"required,url_format"`
	Timeout time.Duration `yaml:"timeout" default:"0s" validate:"gte=0"`
	Debug   bool          `yaml:"debug" default:"false"`
}

type RequiredFieldConfig struct {
	Required string `yaml:"required" validate:"required"`
}

type URLValidatorConfig struct {
	URL string `validate:"url_format"`
}

func TestApplyDefaults_BasicTypes(t *testing.T) {
	config := BasicConfig{}

	if err := ApplyDefaults(&config); err != nil {
		t.Fatalf("ApplyDefaults failed: %v", err)
	}

	if config.Name != "default-name" {
		t.Errorf("Expected Name='default-name', got '%s'", config.Name)
	}
	if config.Retries != 3 {
		t.Errorf("Expected Retries=3, got %d", config.Retries)
	}
	if !config.Enabled {
		t.Errorf("Expected Enabled=true, got false")
	}
}

func TestApplyDefaults_NilConfig(t *testing.T) {
	if err := ApplyDefaults(nil); err == nil {
		t.Error("Expected error for nil config, got nil")
	}
}

func TestInitializeConfig_DefaultsOnly(t *testing.T) {
	config := EndpointConfig{}

	if err := InitializeConfig(&config, nil); err != nil {
		t.Fatalf("InitializeConfig failed: %v", err)
	}

	if config.BaseURL != "https://api.example.com/v2" {
		t.Errorf("Expected default BaseURL, got '%s'", config.BaseURL)
	}
	if config.Timeout != 0 {
		t.Errorf("Expected zero Timeout, got %v", config.Timeout)
	}
}

func TestInitializeConfig_MergesRawValues(t *testing.T) {
	config := EndpointConfig{}

	raw := map[string]any{
		"base_url": "http://127.0.0.1:9000",
		"timeout":  "1500ms",
		"debug":    "true",
	}
	if err := InitializeConfig(&config, raw); err != nil {
		t.Fatalf("InitializeConfig failed: %v", err)
	}

	if config.BaseURL != "http://127.0.0.1:9000" {
		t.Errorf("Expected BaseURL from raw values, got '%s'", config.BaseURL)
	}
	if config.Timeout != 1500*time.Millisecond {
		t.Errorf("Expected Timeout=1.5s, got %v", config.Timeout)
	}
	if !config.Debug {
		t.Error("Expected Debug=true from weakly typed string")
	}
}

func TestInitializeConfig_ValidationRunsAfterMerge(t *testing.T) {
	config := EndpointConfig{}

	err := InitializeConfig(&config, map[string]any{"base_url": "not-a-url"})
	if err == nil {
		t.Fatal("Expected validation error for invalid base_url, got nil")
	}
	if !strings.Contains(err.Error(), "url_format") {
		t.Errorf("Expected error to mention rule 'url_format', got: %v", err)
	}
}

func TestInitializeConfig_UnknownKey(t *testing.T) {
	config := EndpointConfig{}

	err := InitializeConfig(&config, map[string]any{"base_ulr": "http://example.com"})
	if err == nil {
		t.Fatal("Expected error for unknown config key, got nil")
	}
}

func TestValidateConfig_RequiredField(t *testing.T) {
	if err := validateConfig(RequiredFieldConfig{Required: "value"}); err != nil {
		t.Errorf("validateConfig failed for valid config: %v", err)
	}

	err := validateConfig(RequiredFieldConfig{})
	if err == nil {
		t.Fatal("Expected validation error for missing required field, got nil")
	}
	if !strings.Contains(err.Error(), "Required") {
		t.Errorf("Expected error to mention 'Required', got: %v", err)
	}
}

func TestValidateConfig_NilConfig(t *testing.T) {
	if err := validateConfig(nil); err == nil {
		t.Error("Expected error for nil config, got nil")
	}
}

func TestCustomValidator_URLFormat(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		shouldErr bool
	}{
		{"valid HTTP", "http://example.com", false},
		{"valid HTTPS with path", "https://api.myquran.com/v2", false},
		{"valid with port", "http://127.0.0.1:8080", false},
		{"invalid no scheme", "api.myquran.com", true},
		{"invalid no host", "http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(URLValidatorConfig{URL: tt.url})
			if tt.shouldErr && err == nil {
				t.Errorf("Expected validation error for '%s', got nil", tt.url)
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("Expected no error for '%s', got: %v", tt.url, err)
			}
		})
	}
}
