package factory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opd-ai/versecrypt/crypto"
	"github.com/opd-ai/versecrypt/interfaces"
	"github.com/opd-ai/versecrypt/limits"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "versecrypt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvCorpusPath, EnvCipher, EnvMaxPlaintext, EnvLogLevel} {
		t.Setenv(name, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Empty(t, config.CorpusPath)
	assert.Equal(t, crypto.AES256GCM.Name, config.Cipher)
	assert.Equal(t, limits.DefaultPlaintextMessage, config.MaxPlaintextSize)
	assert.Equal(t, "info", config.LogLevel)
	assert.NoError(t, config.Validate())
}

func TestLoadConfigWithoutFile(t *testing.T) {
	clearEnv(t)

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigFromYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
corpusPath: /srv/words.txt
cipher: chacha20-poly1305
maxPlaintextSize: 4096
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/words.txt", config.CorpusPath)
	assert.Equal(t, "chacha20-poly1305", config.Cipher)
	assert.Equal(t, 4096, config.MaxPlaintextSize)
	assert.Equal(t, "info", config.LogLevel, "unset keys keep their defaults")
}

func TestLoadConfigErrors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.yaml") },
		},
		{
			name: "malformed yaml",
			path: func(t *testing.T) string { return writeConfig(t, "cipher: [unterminated") },
		},
		{
			name:    "unknown cipher",
			path:    func(t *testing.T) string { return writeConfig(t, "cipher: rot13\n") },
			wantErr: crypto.ErrUnsupportedCipherSuite,
		},
		{
			name:    "plaintext cap too large",
			path:    func(t *testing.T) string { return writeConfig(t, "maxPlaintextSize: 1000000\n") },
			wantErr: interfaces.ErrInvalidMaxPlaintext,
		},
		{
			name:    "unknown log level",
			path:    func(t *testing.T) string { return writeConfig(t, "logLevel: chatty\n") },
			wantErr: interfaces.ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfig(tt.path(t))
			require.Error(t, err)
			assert.Nil(t, config)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "cipher: aes-256-gcm\nmaxPlaintextSize: 4096\n")
	t.Setenv(EnvCorpusPath, " /opt/corpus.txt ")
	t.Setenv(EnvCipher, "ChaCha20-Poly1305")
	t.Setenv(EnvMaxPlaintext, "2048")
	t.Setenv(EnvLogLevel, "DEBUG")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/corpus.txt", config.CorpusPath)
	assert.Equal(t, "chacha20-poly1305", config.Cipher)
	assert.Equal(t, 2048, config.MaxPlaintextSize)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestInvalidEnvironmentKeepsPreviousValue(t *testing.T) {
	tests := []struct {
		name   string
		env    string
		value  string
		verify func(t *testing.T, config *interfaces.PipelineConfig)
	}{
		{
			name:  "unknown cipher",
			env:   EnvCipher,
			value: "des",
			verify: func(t *testing.T, config *interfaces.PipelineConfig) {
				assert.Equal(t, crypto.AES256GCM.Name, config.Cipher)
			},
		},
		{
			name:  "non-numeric size",
			env:   EnvMaxPlaintext,
			value: "lots",
			verify: func(t *testing.T, config *interfaces.PipelineConfig) {
				assert.Equal(t, limits.DefaultPlaintextMessage, config.MaxPlaintextSize)
			},
		},
		{
			name:  "size below minimum",
			env:   EnvMaxPlaintext,
			value: "0",
			verify: func(t *testing.T, config *interfaces.PipelineConfig) {
				assert.Equal(t, limits.DefaultPlaintextMessage, config.MaxPlaintextSize)
			},
		},
		{
			name:  "size above maximum",
			env:   EnvMaxPlaintext,
			value: "65537",
			verify: func(t *testing.T, config *interfaces.PipelineConfig) {
				assert.Equal(t, limits.DefaultPlaintextMessage, config.MaxPlaintextSize)
			},
		},
		{
			name:  "unknown log level",
			env:   EnvLogLevel,
			value: "loud",
			verify: func(t *testing.T, config *interfaces.PipelineConfig) {
				assert.Equal(t, "info", config.LogLevel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.env, tt.value)

			config, err := LoadConfig("")
			require.NoError(t, err)
			tt.verify(t, config)
		})
	}
}

func TestMaxPlaintextBoundsAccepted(t *testing.T) {
	for _, value := range []string{"1", "65536"} {
		clearEnv(t)
		t.Setenv(EnvMaxPlaintext, value)

		config, err := LoadConfig("")
		require.NoError(t, err, value)
		assert.Contains(t, []int{MinPlaintextSize, MaxPlaintextSize}, config.MaxPlaintextSize)
	}
}

func TestConfigureLogging(t *testing.T) {
	previous := logrus.GetLevel()
	t.Cleanup(func() { logrus.SetLevel(previous) })

	require.NoError(t, ConfigureLogging(&interfaces.PipelineConfig{LogLevel: "warn"}))
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	require.NoError(t, ConfigureLogging(&interfaces.PipelineConfig{}))
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	require.NoError(t, ConfigureLogging(nil))

	err := ConfigureLogging(&interfaces.PipelineConfig{LogLevel: "verbose"})
	assert.ErrorIs(t, err, interfaces.ErrInvalidLogLevel)
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}
