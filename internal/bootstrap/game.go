package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/ShadowArmy_Go/internal/catalog"
	"github.com/osse101/ShadowArmy_Go/internal/config"
	"github.com/osse101/ShadowArmy_Go/internal/event"
	"github.com/osse101/ShadowArmy_Go/internal/game"
	"github.com/osse101/ShadowArmy_Go/internal/offline"
	"github.com/osse101/ShadowArmy_Go/internal/progression"
	"github.com/osse101/ShadowArmy_Go/internal/repository"
	"github.com/osse101/ShadowArmy_Go/internal/shadow"
)

// GameConfig maps environment tunables onto the game's configuration
func GameConfig(cfg *config.Config) game.Config {
	return game.Config{
		PlayerName: cfg.PlayerName,
		Progression: progression.Config{
			Curve:              progression.Curve{Base: progression.BaseExpToNext, Growth: cfg.PlayerExpGrowth},
			StatPointsPerLevel: cfg.StatPointsPerLevel,
		},
		Shadow: shadow.Config{
			Curve:      progression.Curve{Base: progression.BaseExpToNext, Growth: cfg.ShadowExpGrowth},
			LevelBonus: cfg.ShadowLevelBonus,
		},
		ShadowExpShare: cfg.ShadowExpShare,
		Offline: offline.Config{
			MinElapsed:  cfg.OfflineMinElapsed,
			HuntCatchUp: cfg.OfflineHuntCatchUp,
		},
	}
}

// InitializeGame builds the game service over the embedded catalog and
// restores the configured save slot, crediting time spent offline. An empty
// slot starts a new game.
func InitializeGame(ctx context.Context, cfg *config.Config, bus event.Bus, repo repository.Snapshot) (game.Service, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	clock := game.NewRealClock()
	state := game.NewState(cat, GameConfig(cfg), clock.Now())
	svc := game.NewService(state, clock, bus, repo, cfg.SaveSlot)

	report, err := svc.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadGame, err)
	}

	player := svc.Player(ctx)
	slog.Info(LogMsgGameLoaded,
		"slot", cfg.SaveSlot,
		"level", player.Level,
		"shadows", len(svc.Shadows(ctx)))
	if report.Applied {
		slog.Info(LogMsgOfflineProgress,
			"offline", report.TimeOffline,
			"exp_gained", report.ExpGained,
			"levels_gained", report.PlayerLevelsGained)
	}
	return svc, nil
}
