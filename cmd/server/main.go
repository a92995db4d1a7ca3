package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"SmartMoneyIndex/internal/cache"
	"SmartMoneyIndex/internal/config"
	"SmartMoneyIndex/internal/loader"
	"SmartMoneyIndex/internal/metrics"
	"SmartMoneyIndex/internal/notifier"
	"SmartMoneyIndex/internal/provider"
	"SmartMoneyIndex/internal/recorder"
	"SmartMoneyIndex/internal/scheduler"
	"SmartMoneyIndex/internal/server"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	setupLogging(cfg.Logging.Level, cfg.Logging.Format)
	log.Info().Msg("SmartMoneyIndex starting")

	// Providers
	var (
		macro  provider.MacroProvider
		quotes provider.QuoteProvider
	)
	if cfg.Providers.UseMock {
		macro = &provider.MockMacroProvider{}
		quotes = &provider.MockQuoteProvider{}
		log.Warn().Msg("using mock providers, data is synthetic")
	} else {
		macro = provider.NewFredProvider(cfg.Providers.Fred.BaseURL, cfg.Providers.Fred.APIKey, cfg.Proxy)
		quotes = provider.NewYahooProvider(cfg.Providers.Yahoo.BaseURL, cfg.Proxy)
	}
	log.Info().Str("macro", macro.Name()).Str("quotes", quotes.Name()).Msg("providers ready")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cache backend
	var store cache.Store
	if cfg.Cache.Redis.Enabled {
		r, err := cache.NewRedis(ctx, cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		defer r.Close()
		store = r
		log.Info().Str("addr", cfg.Cache.Redis.Addr).Msg("using redis cache")
	} else {
		store = cache.NewMemory()
	}

	m := metrics.New()
	l := loader.New(macro, quotes, store, cfg.Cache.TTL.Std(), cfg.Series.EquityTickers, m)

	// Recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	sched := scheduler.NewScheduler(ctx, l, rec, tn, m, cfg.Survey.CashLevel)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.ReportCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if tn.Enabled() {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	srv := server.New(server.NewHandler(l, cfg.Survey.CashLevel), server.Options{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	})
	srv.Start()
	log.Info().Str("addr", cfg.Server.Addr).Msg("http server started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, refreshing now")
		go sched.RunRefreshNow()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	log.Info().Msg("SmartMoneyIndex stopped")
}

func setupLogging(level, format string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
