package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// App is the process configuration. Values come from an optional config
// file and MINESWEEPER_* environment variables, the latter taking
// precedence.
type App struct {
	Addr            string
	AllowedOrigins  []string
	Development     bool
	LogFile         string
	Difficulty      string
	Custom          Game
	ScoreboardLimit int
}

func NewApp(configPath string) (*App, error) {
	v := viper.New()
	v.SetEnvPrefix("MINESWEEPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", "127.0.0.1:8080")
	v.SetDefault("allowed_origins", []string{})
	v.SetDefault("development", false)
	v.SetDefault("log_file", "")
	v.SetDefault("difficulty", Easy.String())
	v.SetDefault("custom.width", presets[Easy].Width)
	v.SetDefault("custom.height", presets[Easy].Height)
	v.SetDefault("custom.mine_count", presets[Easy].MineCount)
	v.SetDefault("scoreboard.limit", 100)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", configPath, err)
		}
	}

	app := &App{
		Addr:           v.GetString("addr"),
		AllowedOrigins: v.GetStringSlice("allowed_origins"),
		Development:    v.GetBool("development"),
		LogFile:        v.GetString("log_file"),
		Difficulty:     v.GetString("difficulty"),
		Custom: Game{
			Difficulty: Custom,
			Width:      v.GetInt("custom.width"),
			Height:     v.GetInt("custom.height"),
			MineCount:  v.GetInt("custom.mine_count"),
		},
		ScoreboardLimit: v.GetInt("scoreboard.limit"),
	}
	if app.Addr == "" {
		return nil, fmt.Errorf("addr must not be empty")
	}
	if app.ScoreboardLimit <= 0 {
		return nil, fmt.Errorf("scoreboard.limit must be positive, got %d", app.ScoreboardLimit)
	}
	return app, nil
}

// DefaultGame is the game a fresh connection starts with.
func (a App) DefaultGame(log logrus.FieldLogger) Game {
	d, err := ParseDifficulty(a.Difficulty)
	if err != nil {
		log.WithError(err).Warn("unknown difficulty, using easy as default")
		return presets[Easy]
	}
	return GameFor(log, d, a.Custom.Width, a.Custom.Height, a.Custom.MineCount)
}

func (a App) Fields() logrus.Fields {
	return logrus.Fields{
		"addr":             a.Addr,
		"allowed_origins":  a.AllowedOrigins,
		"development":      a.Development,
		"log_file":         a.LogFile,
		"difficulty":       a.Difficulty,
		"custom":           a.Custom.String(),
		"scoreboard_limit": a.ScoreboardLimit,
	}
}
