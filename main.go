package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pairs/internal/clock"
	"github.com/robalobadob/pairs/internal/config"
	"github.com/robalobadob/pairs/internal/httpserver"
	"github.com/robalobadob/pairs/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.Server.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.Auth.TokenSecret == config.DevTokenSecret {
		log.Warn().Msg("using development token secret; set PAIRS_AUTH_TOKEN_SECRET")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := clock.Real{}
	feed := httpserver.NewFeed()
	tables := store.NewMemoryStore(clk, feed.Tables(clk))
	go pruneLoop(ctx, tables, cfg.Store.PruneInterval, cfg.Store.IdleTTL)

	srv := httpserver.New(tables, feed, clk, httpserver.Options{
		ClientOrigin: cfg.Server.ClientOrigin,
		TokenSecret:  cfg.Auth.TokenSecret,
		TokenTTL:     cfg.Auth.TokenTTL,
		DailySalt:    cfg.Daily.Salt,
	})
	log.Info().Int("port", cfg.Server.Port).Msg("starting pairs server")
	if err := srv.Start(ctx, cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// pruneLoop closes tables nobody has touched for idle.
func pruneLoop(ctx context.Context, st store.Store, every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Prune(ctx, idle); n > 0 {
				log.Info().Int("evicted", n).Int("live", st.Len()).Msg("pruned idle tables")
			}
		}
	}
}
