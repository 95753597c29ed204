package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/multiswap/api"
	"github.com/paw-chain/multiswap/app"
	"github.com/paw-chain/multiswap/x/multiswap/types"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInitWritesConfigAndGenesis(t *testing.T) {
	home := t.TempDir()

	_, err := runCmd(t, "init", "--home", home, "--chain-id", "swap-test")
	require.NoError(t, err)
	require.FileExists(t, genesisPath(home))
	require.FileExists(t, appConfigPath(home))

	v, err := loadViper(home, nil)
	require.NoError(t, err)
	require.Equal(t, "swap-test", v.GetString(app.FlagChainID))
	require.Equal(t, 1, v.GetInt(app.FlagInvCheckPeriod))

	_, err = runCmd(t, "init", "--home", home)
	require.ErrorContains(t, err, "already exists")

	_, err = runCmd(t, "init", "--home", home, "--overwrite")
	require.NoError(t, err)
}

func TestValidateGenesis(t *testing.T) {
	home := t.TempDir()
	_, err := runCmd(t, "init", "--home", home)
	require.NoError(t, err)

	out, err := runCmd(t, "validate-genesis", "--home", home)
	require.NoError(t, err)
	require.Contains(t, out, "valid genesis file")

	bad := home + "/bad.json"
	require.NoError(t, os.WriteFile(bad, []byte(`{"params":{"max_swap_actions":0,"max_pools":1}}`), 0o600))
	_, err = runCmd(t, "validate-genesis", bad, "--home", home)
	require.Error(t, err)
}

func TestExportAfterGenesis(t *testing.T) {
	home := t.TempDir()
	_, err := runCmd(t, "init", "--home", home)
	require.NoError(t, err)

	_, err = runCmd(t, "export", "--home", home)
	require.ErrorContains(t, err, "no state")

	v, err := loadViper(home, nil)
	require.NoError(t, err)
	a, err := openApp(&nodeContext{Home: home, Viper: v, Logger: log.NewNopLogger()})
	require.NoError(t, err)
	genState, err := readGenesis(genesisPath(home))
	require.NoError(t, err)
	require.NoError(t, a.InitChain(genState))
	require.NoError(t, a.Close())

	out, err := runCmd(t, "export", "--home", home)
	require.NoError(t, err)
	var exported types.GenesisState
	require.NoError(t, json.Unmarshal([]byte(out), &exported))
	require.Equal(t, types.DefaultParams(), exported.Params)
}

func TestTokenCmd(t *testing.T) {
	home := t.TempDir()

	_, err := runCmd(t, "token", "--home", home, "--subject", "vault", "--role", api.RoleCustodian)
	require.ErrorContains(t, err, "jwt-secret")

	t.Setenv("MULTISWAP_API_JWT_SECRET", "s3cret")
	out, err := runCmd(t, "token", "--home", home, "--subject", "vault", "--role", api.RoleCustodian, "--ttl", "1h")
	require.NoError(t, err)

	claims, err := api.NewAuthService([]byte("s3cret"), time.Hour).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	require.Equal(t, "vault", claims.Subject)
	require.Equal(t, api.RoleCustodian, claims.Role)
}

func TestAPIConfigLayers(t *testing.T) {
	home := t.TempDir()
	_, err := runCmd(t, "init", "--home", home)
	require.NoError(t, err)

	t.Setenv("MULTISWAP_API_PORT", "6100")
	v, err := loadViper(home, nil)
	require.NoError(t, err)

	cfg, err := apiConfig(v)
	require.NoError(t, err)
	require.Equal(t, "6100", cfg.Port)
	require.Equal(t, api.DefaultConfig().Host, cfg.Host)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Empty(t, cfg.JWTSecret)

	bad := viper.New()
	bad.Set(keyAPITokenTTL, "soon")
	_, err = apiConfig(bad)
	require.Error(t, err)
}

func TestTelemetryConfig(t *testing.T) {
	home := t.TempDir()
	_, err := runCmd(t, "init", "--home", home)
	require.NoError(t, err)

	v, err := loadViper(home, nil)
	require.NoError(t, err)
	cfg, err := telemetryConfig(v)
	require.NoError(t, err)
	require.False(t, cfg.Enabled)
	require.Equal(t, float64(1), cfg.SampleRate)

	t.Setenv("MULTISWAP_TELEMETRY_ENABLED", "true")
	v, err = loadViper(home, nil)
	require.NoError(t, err)
	_, err = telemetryConfig(v)
	require.ErrorContains(t, err, "otlp-endpoint")
}
