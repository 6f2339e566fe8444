// Package masking redacts secrets before they reach logs or printed
// configuration.
package masking

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Strategy defines how a value is masked.
type Strategy string

const (
	StrategyFull    Strategy = "full"    // Replace every character with the mask
	StrategyPartial Strategy = "partial" // Show first/last N chars, mask middle
	StrategyHash    Strategy = "hash"    // Replace with a short SHA-256 prefix
	StrategyRedact  Strategy = "redact"  // Replace with [REDACTED]
	StrategyNone    Strategy = "none"
)

// Redacted is the placeholder used by StrategyRedact.
const Redacted = "[REDACTED]"

// Config holds masking parameters.
type Config struct {
	Strategy       Strategy
	ShowFirstChars int
	ShowLastChars  int
	MaskChar       rune
}

// DefaultConfig shows the first two and last two characters.
func DefaultConfig() Config {
	return Config{
		Strategy:       StrategyPartial,
		ShowFirstChars: 2,
		ShowLastChars:  2,
		MaskChar:       '*',
	}
}

// Masker applies a Config to strings and maps.
type Masker struct {
	config Config
}

// NewMasker creates a masker; a zero MaskChar falls back to '*'.
func NewMasker(config Config) *Masker {
	if config.MaskChar == 0 {
		config.MaskChar = '*'
	}
	if config.Strategy == "" {
		config.Strategy = StrategyPartial
	}
	return &Masker{config: config}
}

// MaskString masks value with the configured strategy. Empty values stay
// empty so an unset secret is still visibly unset.
func (m *Masker) MaskString(value string) string {
	if value == "" {
		return ""
	}
	switch m.config.Strategy {
	case StrategyFull:
		return m.maskFull(value)
	case StrategyHash:
		sum := sha256.Sum256([]byte(value))
		return hex.EncodeToString(sum[:8])
	case StrategyRedact:
		return Redacted
	case StrategyNone:
		return value
	default:
		return m.maskPartial(value)
	}
}

func (m *Masker) maskFull(value string) string {
	return strings.Repeat(string(m.config.MaskChar), len(value))
}

func (m *Masker) maskPartial(value string) string {
	n := len(value)
	if n <= m.config.ShowFirstChars+m.config.ShowLastChars {
		return m.maskFull(value)
	}
	first := value[:m.config.ShowFirstChars]
	last := value[n-m.config.ShowLastChars:]
	return first + strings.Repeat(string(m.config.MaskChar), n-m.config.ShowFirstChars-m.config.ShowLastChars) + last
}

// MaskMap returns a copy of data with every string under a sensitive key
// masked. Nested maps are walked.
func (m *Masker) MaskMap(data map[string]any) map[string]any {
	result := make(map[string]any, len(data))
	for key, value := range data {
		switch v := value.(type) {
		case string:
			if IsSensitiveField(key) {
				result[key] = m.MaskString(v)
			} else {
				result[key] = v
			}
		case map[string]any:
			result[key] = m.MaskMap(v)
		default:
			result[key] = v
		}
	}
	return result
}

// IsSensitiveField reports whether a field name indicates a secret.
func IsSensitiveField(fieldName string) bool {
	lower := strings.ToLower(fieldName)
	for _, keyword := range []string{"password", "secret", "token", "access_key", "api_key", "authorization"} {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// Secret masks a single credential with the default configuration.
func Secret(value string) string {
	return NewMasker(DefaultConfig()).MaskString(value)
}
