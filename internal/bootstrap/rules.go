package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/TaskQuest_Go/internal/config"
	"github.com/osse101/TaskQuest_Go/internal/progression"
)

// LoadBalanceRules reads the progression tables from cfg.BalanceFile, or
// returns the built-in tables when no file is configured
func LoadBalanceRules(cfg *config.Config) (*progression.Rules, error) {
	if cfg.BalanceFile == "" {
		slog.Info(LogMsgBalanceDefault)
		return progression.DefaultRules(), nil
	}

	rules, err := progression.LoadRules(cfg.BalanceFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadRules, err)
	}

	slog.Info(LogMsgBalanceLoaded,
		"path", cfg.BalanceFile,
		"difficulties", len(rules.Difficulties),
		"titles", len(rules.Titles))
	return rules, nil
}
