package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
document:
  default_title: "site-survey"
  file_name_transliterate: true
  images:
    use_placeholder: false
    max_upload_bytes: 20971520
export:
  format: jpeg
  quality: high
  pixel_ratio: 2.0
  asset_timeout_sec: 5
logging:
  console:
    level: normal
  file:
    level: debug
    destination: ` + filepath.Join(tmpDir, "test.log") + `
    mode: append
projects:
  path: ` + filepath.Join(tmpDir, "projects.db") + `
reporting:
  destination: ` + filepath.Join(tmpDir, "test-report.zip") + `
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Document.DefaultTitle != "site-survey" {
		t.Errorf("DefaultTitle = %q, want %q", cfg.Document.DefaultTitle, "site-survey")
	}

	if !cfg.Document.FileNameTransliterate {
		t.Error("Expected FileNameTransliterate to be true")
	}

	if cfg.Document.Images.MaxUploadBytes != 20971520 {
		t.Errorf("MaxUploadBytes = %d, want 20971520", cfg.Document.Images.MaxUploadBytes)
	}

	if cfg.Export.Format != OutputFmtJpeg {
		t.Errorf("Format = %v, want %v", cfg.Export.Format, OutputFmtJpeg)
	}

	if cfg.Export.Quality != QualityTierHigh {
		t.Errorf("Quality = %v, want %v", cfg.Export.Quality, QualityTierHigh)
	}

	if cfg.Export.PixelRatio != 2.0 {
		t.Errorf("PixelRatio = %f, want 2.0", cfg.Export.PixelRatio)
	}

	if cfg.Export.AssetTimeout() != 5*time.Second {
		t.Errorf("AssetTimeout() = %v, want 5s", cfg.Export.AssetTimeout())
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unknown.yaml")

	configWithUnknown := `version: 1
unknown_field: value
document:
  default_title: "x"
`

	if err := os.WriteFile(configPath, []byte(configWithUnknown), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_values.yaml")

	// Invalid version number
	configWithInvalidVersion := `version: 2
document:
  default_title: "x"
`

	if err := os.WriteFile(configPath, []byte(configWithInvalidVersion), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected validation error for invalid version")
	}
}

func TestLoadConfiguration_MergeWithDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial.yaml")

	// Partial config that only overrides some values
	partialConfig := `version: 1
export:
  quality: low
`

	if err := os.WriteFile(configPath, []byte(partialConfig), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Export.Quality != QualityTierLow {
		t.Errorf("Quality = %v, want %v", cfg.Export.Quality, QualityTierLow)
	}

	// defaults for fields the file does not mention
	if cfg.Export.Format != OutputFmtPdf {
		t.Errorf("Format = %v, want default %v", cfg.Export.Format, OutputFmtPdf)
	}
	if cfg.Document.Images.MaxUploadBytes != 15728640 {
		t.Errorf("MaxUploadBytes = %d, want default 15728640", cfg.Document.Images.MaxUploadBytes)
	}
	if cfg.Document.DefaultTitle == "" {
		t.Error("DefaultTitle should have a default value")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}

	// Verify it's valid YAML by trying to unmarshal
	cfg := &Config{}
	_, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Dump() returned empty data")
	}

	// Verify we can load it back
	cfg2 := &Config{}
	_, err = unmarshalConfig(data, cfg2, false)
	if err != nil {
		t.Errorf("Dumped config cannot be loaded: %v", err)
	}

	if cfg2.Version != cfg.Version {
		t.Errorf("Version mismatch after dump/load: got %d, want %d", cfg2.Version, cfg.Version)
	}
}

func TestQualityTier_Scales(t *testing.T) {
	tests := []struct {
		tier    QualityTier
		scale   float64
		quality int
	}{
		{QualityTierLow, 2.0, 60},
		{QualityTierStandard, 3.0, 70},
		{QualityTierHigh, 4.0, 90},
	}

	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			if got := tt.tier.BaseScale(); got != tt.scale {
				t.Errorf("BaseScale() = %f, want %f", got, tt.scale)
			}
			if got := tt.tier.JPEGQuality(); got != tt.quality {
				t.Errorf("JPEGQuality() = %d, want %d", got, tt.quality)
			}
		})
	}
}

func TestOutputFmt_Ext(t *testing.T) {
	tests := []struct {
		fmt      OutputFmt
		expected string
	}{
		{OutputFmtPdf, ".pdf"},
		{OutputFmtJpeg, ".jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.fmt.String(), func(t *testing.T) {
			if got := tt.fmt.Ext(); got != tt.expected {
				t.Errorf("Ext() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOutputFmt_Ext_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Ext() should panic for invalid format")
		}
	}()
	invalidFmt := OutputFmt(99)
	invalidFmt.Ext()
}

func TestParseOutputFmt(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  OutputFmt
		shouldErr bool
	}{
		{"pdf", "pdf", OutputFmtPdf, false},
		{"jpeg", "jpeg", OutputFmtJpeg, false},
		{"invalid", "png", OutputFmt(0), true},
		{"empty", "", OutputFmt(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutputFmt(tt.input)
			if tt.shouldErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseOutputFmt(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanFileName(t *testing.T) {
	got := CleanFileName("a" + string(os.PathSeparator) + "b")
	if got != "ab" {
		t.Errorf("CleanFileName() = %q, want %q", got, "ab")
	}

	if got := CleanFileName(""); got != "_bad_file_name_" {
		t.Errorf("CleanFileName(\"\") = %q, want placeholder", got)
	}
}
