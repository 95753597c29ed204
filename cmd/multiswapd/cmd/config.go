package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/paw-chain/multiswap/api"
	"github.com/paw-chain/multiswap/app"
)

const (
	envPrefix      = "MULTISWAP"
	configDirName  = "config"
	dataDirName    = "data"
	appConfigFile  = "app.toml"
	genesisFile    = "genesis.json"
	flagHome       = "home"
	flagLogLevel   = "log-level"
	flagLogFormat  = "log-format"
	flagOverwrite  = "overwrite"
	keyAPIHost     = "api.host"
	keyAPIPort     = "api.port"
	keyAPISecret   = "api.jwt-secret"
	keyAPITokenTTL = "api.token-ttl"
	keyAPICORS     = "api.cors-origins"
	keyAPIRate     = "api.rate-limit-rps"
	keyOTelEnabled = "telemetry.enabled"
	keyOTelURL     = "telemetry.otlp-endpoint"
	keyOTelSample  = "telemetry.sample-rate"
)

// AppConfig is the content of app.toml.
type AppConfig struct {
	ChainID        string
	Pruning        string
	InvCheckPeriod uint
	API            api.Config
	Telemetry      app.TelemetryConfig
}

// DefaultAppConfig returns the settings written by init.
func DefaultAppConfig(chainID string) AppConfig {
	return AppConfig{
		ChainID:        chainID,
		Pruning:        app.DefaultPruning,
		InvCheckPeriod: 1,
		API:            *api.DefaultConfig(),
		Telemetry:      app.TelemetryConfig{SampleRate: 1},
	}
}

const appConfigTemplate = `# multiswapd configuration

chain-id = "{{ .ChainID }}"

# default | nothing | everything
pruning = "{{ .Pruning }}"

# Run every invariant after each Nth committed operation. 0 disables the check.
inv-check-period = {{ .InvCheckPeriod }}

[api]
host = "{{ .API.Host }}"
port = "{{ .API.Port }}"

# HS256 secret used to sign and verify API tokens. Leave empty to
# generate a throwaway secret on every start.
jwt-secret = ""
token-ttl = "{{ .API.TokenTTL }}"
cors-origins = [{{ range $i, $o := .API.CORSOrigins }}{{ if $i }}, {{ end }}"{{ $o }}"{{ end }}]
rate-limit-rps = {{ .API.RateLimitRPS }}

[telemetry]
# Export request traces over OTLP/HTTP.
enabled = {{ .Telemetry.Enabled }}
otlp-endpoint = "{{ .Telemetry.OTLPEndpoint }}"
sample-rate = {{ .Telemetry.SampleRate }}
`

// writeAppConfig renders cfg to path.
func writeAppConfig(path string, cfg AppConfig) error {
	tmpl, err := template.New("app.toml").Parse(appConfigTemplate)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

// loadViper reads $home/config/app.toml when present and layers
// MULTISWAP_* environment variables and command-line flags on top.
func loadViper(home string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	configPath := appConfigPath(home)
	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigType("toml")
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// apiConfig builds the API server settings from v, falling back to defaults.
func apiConfig(v *viper.Viper) (*api.Config, error) {
	cfg := api.DefaultConfig()
	if v.IsSet(keyAPIHost) {
		cfg.Host = cast.ToString(v.Get(keyAPIHost))
	}
	if v.IsSet(keyAPIPort) {
		cfg.Port = cast.ToString(v.Get(keyAPIPort))
	}
	if secret := cast.ToString(v.Get(keyAPISecret)); secret != "" {
		cfg.JWTSecret = []byte(secret)
	}
	if v.IsSet(keyAPITokenTTL) {
		ttl, err := cast.ToDurationE(v.Get(keyAPITokenTTL))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", keyAPITokenTTL, err)
		}
		cfg.TokenTTL = ttl
	}
	if v.IsSet(keyAPICORS) {
		cfg.CORSOrigins = cast.ToStringSlice(v.Get(keyAPICORS))
	}
	if v.IsSet(keyAPIRate) {
		rps, err := cast.ToIntE(v.Get(keyAPIRate))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", keyAPIRate, err)
		}
		cfg.RateLimitRPS = rps
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return cfg, nil
}

// telemetryConfig reads the [telemetry] section of v.
func telemetryConfig(v *viper.Viper) (app.TelemetryConfig, error) {
	cfg := app.TelemetryConfig{SampleRate: 1}
	var err error
	if cfg.Enabled, err = cast.ToBoolE(v.Get(keyOTelEnabled)); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", keyOTelEnabled, err)
	}
	cfg.OTLPEndpoint = cast.ToString(v.Get(keyOTelURL))
	if v.IsSet(keyOTelSample) {
		if cfg.SampleRate, err = cast.ToFloat64E(v.Get(keyOTelSample)); err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", keyOTelSample, err)
		}
	}
	if cfg.Enabled && cfg.OTLPEndpoint == "" {
		return cfg, fmt.Errorf("%s is required when tracing is enabled", keyOTelURL)
	}
	return cfg, nil
}

func configDir(home string) string { return filepath.Join(home, configDirName) }

func dataDir(home string) string { return filepath.Join(home, dataDirName) }

func genesisPath(home string) string { return filepath.Join(home, configDirName, genesisFile) }

func appConfigPath(home string) string { return filepath.Join(home, configDirName, appConfigFile) }
