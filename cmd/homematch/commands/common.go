package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/homematch/internal/setup"
	applog "github.com/povarna/generative-ai-agents/homematch/internal/setup/logger"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

// AppContext holds what a command needs once dependencies are wired.
type AppContext struct {
	Config *setup.Config
	Deps   *setup.Dependencies
	Logger zerolog.Logger
}

// NewAppContext loads envFile when present, applies the --listings override
// and wires every component.
func NewAppContext(ctx context.Context, cmd *cli.Command) (*AppContext, error) {
	if envFile := cmd.String("env"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := setup.LoadConfig()
	if path := cmd.String("listings"); path != "" {
		cfg.ListingsPath = path
	}

	appCtx := &AppContext{Config: cfg, Logger: applog.New(cfg.LogLevel, true)}

	deps, err := setup.Wire(ctx, cfg, &appCtx.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to wire dependencies: %w", err)
	}
	appCtx.Deps = deps
	return appCtx, nil
}

func (ac *AppContext) Close() {
	if ac.Deps != nil {
		ac.Deps.Close()
	}
}

func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
