package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigValidator_Required(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.Required("Output", "")

	if !cv.HasErrors() {
		t.Error("Expected error for empty required field")
	}

	cv2 := NewConfigValidator("TestConfig")
	cv2.Required("Output", "model.rdf")

	if cv2.HasErrors() {
		t.Error("Expected no error for non-empty required field")
	}
}

func TestConfigValidator_OneOf(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expectErr bool
	}{
		{"rdfxml", "rdfxml", false},
		{"yaml", "yaml", false},
		{"unknown format", "turtle", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := NewConfigValidator("TestConfig")
			cv.OneOf("Format", tt.value, []string{"rdfxml", "json", "yaml"})
			if cv.HasErrors() != tt.expectErr {
				t.Errorf("OneOf(%q): HasErrors = %v, want %v", tt.value, cv.HasErrors(), tt.expectErr)
			}
		})
	}
}

func TestConfigValidator_NamespaceAndVersion(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.Namespace("Namespace", "http://sbols.org/CRISPR_Example/").
		Version("Version", "1.0.0")
	if cv.HasErrors() {
		t.Fatalf("Expected no errors, got %v", cv.Errors())
	}

	cv = NewConfigValidator("TestConfig")
	cv.Namespace("Namespace", "ftp://example.org/").
		Version("Version", "v1")
	if len(cv.Errors()) != 2 {
		t.Fatalf("Expected 2 errors, got %d: %v", len(cv.Errors()), cv.Errors())
	}
	if !errors.Is(cv.Errors()[0], ErrInvalid) {
		t.Errorf("Expected namespace error to wrap ErrInvalid, got %v", cv.Errors()[0])
	}
}

func TestConfigValidator_Custom(t *testing.T) {
	customErr := errors.New("custom validation failed")

	cv := NewConfigValidator("TestConfig")
	cv.Custom("Field", func() error { return customErr })

	if !cv.HasErrors() {
		t.Fatal("Expected error from custom validator")
	}
	if !errors.Is(cv.Error(), customErr) {
		t.Errorf("Expected wrapped custom error, got %v", cv.Error())
	}

	cv2 := NewConfigValidator("TestConfig")
	cv2.Custom("Field", func() error { return nil })

	if cv2.HasErrors() {
		t.Error("Expected no error when custom validator returns nil")
	}
}

func TestConfigValidator_When(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.When(true, func(v *ConfigValidator) {
		v.Required("S3.Bucket", "")
	})
	if !cv.HasErrors() {
		t.Error("Expected error when condition is true")
	}

	cv2 := NewConfigValidator("TestConfig")
	cv2.When(false, func(v *ConfigValidator) {
		v.Required("S3.Bucket", "")
	})
	if cv2.HasErrors() {
		t.Error("Expected no error when condition is false")
	}
}

func TestConfigValidator_Validate(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	if err := cv.Validate(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}

	cv.Required("Output", "")
	if err := cv.Validate(); err == nil {
		t.Error("Expected error for single failure")
	}

	cv.Required("Format", "")
	err := cv.Validate()
	if err == nil {
		t.Fatal("Expected combined error")
	}
	if !strings.Contains(err.Error(), "2 errors") {
		t.Errorf("Expected error count in message, got %v", err)
	}
}
