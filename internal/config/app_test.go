package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppDefaults(t *testing.T) {
	app, err := NewApp("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", app.Addr)
	assert.False(t, app.Development)
	assert.Equal(t, 100, app.ScoreboardLimit)

	log, _ := test.NewNullLogger()
	assert.Equal(t, Game{Easy, 9, 9, 10}, app.DefaultGame(log))
}

func TestNewAppEnv(t *testing.T) {
	t.Setenv("MINESWEEPER_ADDR", ":9000")
	t.Setenv("MINESWEEPER_DEVELOPMENT", "true")
	t.Setenv("MINESWEEPER_DIFFICULTY", "custom")
	t.Setenv("MINESWEEPER_CUSTOM_WIDTH", "12")
	t.Setenv("MINESWEEPER_CUSTOM_HEIGHT", "8")
	t.Setenv("MINESWEEPER_CUSTOM_MINE_COUNT", "20")
	t.Setenv("MINESWEEPER_ALLOWED_ORIGINS", "http://a.example http://b.example")

	app, err := NewApp("")
	require.NoError(t, err)

	assert.Equal(t, ":9000", app.Addr)
	assert.True(t, app.Development)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, app.AllowedOrigins)

	log, _ := test.NewNullLogger()
	assert.Equal(t, Game{Custom, 12, 8, 20}, app.DefaultGame(log))
}

func TestNewAppFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minesweeper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"addr: localhost:7000\ndifficulty: hard\nscoreboard:\n  limit: 5\n",
	), 0o600))

	app, err := NewApp(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:7000", app.Addr)
	assert.Equal(t, 5, app.ScoreboardLimit)

	log, _ := test.NewNullLogger()
	assert.Equal(t, Game{Hard, 30, 16, 99}, app.DefaultGame(log))

	_, err = NewApp(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewAppInvalid(t *testing.T) {
	t.Setenv("MINESWEEPER_SCOREBOARD_LIMIT", "0")
	_, err := NewApp("")
	assert.Error(t, err)
}

func TestDefaultGameUnknownDifficulty(t *testing.T) {
	t.Setenv("MINESWEEPER_DIFFICULTY", "impossible")
	app, err := NewApp("")
	require.NoError(t, err)

	log, hook := test.NewNullLogger()
	assert.Equal(t, Game{Easy, 9, 9, 10}, app.DefaultGame(log))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestSetupLogging(t *testing.T) {
	log := logrus.New()

	require.NoError(t, SetupLogging(log, &App{Development: true}))
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)

	path := filepath.Join(t.TempDir(), "minesweeper.log")
	require.NoError(t, SetupLogging(log, &App{LogFile: path}))
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log.Info("hello")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
