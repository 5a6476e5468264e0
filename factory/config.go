package factory

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/opd-ai/versecrypt/crypto"
	"github.com/opd-ai/versecrypt/interfaces"
	"github.com/opd-ai/versecrypt/limits"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment variables read by LoadConfig.
const (
	EnvCorpusPath   = "VERSECRYPT_CORPUS_PATH"
	EnvCipher       = "VERSECRYPT_CIPHER"
	EnvMaxPlaintext = "VERSECRYPT_MAX_PLAINTEXT"
	EnvLogLevel     = "VERSECRYPT_LOG_LEVEL"
)

// Validation bounds for VERSECRYPT_MAX_PLAINTEXT.
const (
	// MinPlaintextSize is the smallest configurable plaintext cap.
	MinPlaintextSize = 1
	// MaxPlaintextSize is the largest configurable plaintext cap.
	MaxPlaintextSize = limits.MaxPlaintextMessage
)

// DefaultConfig returns the configuration used when nothing is set:
// the built-in corpus, AES-256-GCM, a 16 KiB plaintext cap and info logging.
func DefaultConfig() *interfaces.PipelineConfig {
	return &interfaces.PipelineConfig{
		CorpusPath:       "",
		Cipher:           crypto.AES256GCM.Name,
		MaxPlaintextSize: limits.DefaultPlaintextMessage,
		LogLevel:         "info",
	}
}

// LoadConfig reads a YAML configuration file over DefaultConfig and then
// applies VERSECRYPT_* environment overrides. An empty path skips the file.
// Keys missing from the file keep their defaults. Invalid environment values
// are logged and ignored; an unreadable or invalid file is an error.
func LoadConfig(path string) (*interfaces.PipelineConfig, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvironmentOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":           "LoadConfig",
		"path":               path,
		"corpus_path":        config.CorpusPath,
		"cipher":             config.Cipher,
		"max_plaintext_size": config.MaxPlaintextSize,
		"log_level":          config.LogLevel,
	}).Info("Loaded pipeline configuration")
	return config, nil
}

// applyEnvironmentOverrides updates config from VERSECRYPT_* variables.
func applyEnvironmentOverrides(config *interfaces.PipelineConfig) {
	if path := strings.TrimSpace(os.Getenv(EnvCorpusPath)); path != "" {
		config.CorpusPath = path
	}
	parseCipherSetting(config)
	parseMaxPlaintextSetting(config)
	parseLogLevelSetting(config)
}

// parseCipherSetting accepts VERSECRYPT_CIPHER only if it names a supported suite.
func parseCipherSetting(config *interfaces.PipelineConfig) {
	name := os.Getenv(EnvCipher)
	if name == "" {
		return
	}
	suite, err := crypto.ParseCipherSuite(name)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "parseCipherSetting",
			"env_var":     EnvCipher,
			"value":       name,
			"error":       err.Error(),
			"using_value": config.Cipher,
		}).Warn("Failed to parse VERSECRYPT_CIPHER environment variable, using default")
		return
	}
	config.Cipher = suite.Name
}

// parseMaxPlaintextSetting accepts VERSECRYPT_MAX_PLAINTEXT within
// [MinPlaintextSize, MaxPlaintextSize].
func parseMaxPlaintextSetting(config *interfaces.PipelineConfig) {
	raw := os.Getenv(EnvMaxPlaintext)
	if raw == "" {
		return
	}
	size, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "parseMaxPlaintextSetting",
			"env_var":     EnvMaxPlaintext,
			"value":       raw,
			"error":       err.Error(),
			"using_value": config.MaxPlaintextSize,
		}).Warn("Failed to parse VERSECRYPT_MAX_PLAINTEXT environment variable, using default")
		return
	}
	if size < MinPlaintextSize || size > MaxPlaintextSize {
		logrus.WithFields(logrus.Fields{
			"function":    "parseMaxPlaintextSetting",
			"env_var":     EnvMaxPlaintext,
			"value":       size,
			"min":         MinPlaintextSize,
			"max":         MaxPlaintextSize,
			"using_value": config.MaxPlaintextSize,
		}).Warn("VERSECRYPT_MAX_PLAINTEXT value out of bounds, using default")
		return
	}
	config.MaxPlaintextSize = size
}

// parseLogLevelSetting accepts VERSECRYPT_LOG_LEVEL if logrus knows the level.
func parseLogLevelSetting(config *interfaces.PipelineConfig) {
	raw := os.Getenv(EnvLogLevel)
	if raw == "" {
		return
	}
	level, err := logrus.ParseLevel(strings.TrimSpace(raw))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "parseLogLevelSetting",
			"env_var":     EnvLogLevel,
			"value":       raw,
			"error":       err.Error(),
			"using_value": config.LogLevel,
		}).Warn("Failed to parse VERSECRYPT_LOG_LEVEL environment variable, using default")
		return
	}
	config.LogLevel = level.String()
}

// ConfigureLogging sets the global logrus level from config. An empty level
// leaves the current level alone.
func ConfigureLogging(config *interfaces.PipelineConfig) error {
	if config == nil || config.LogLevel == "" {
		return nil
	}
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %q", interfaces.ErrInvalidLogLevel, config.LogLevel)
	}
	logrus.SetLevel(level)
	return nil
}
