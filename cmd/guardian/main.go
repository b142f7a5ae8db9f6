package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/audit"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/bot"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/commands"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/config"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/database"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/logging"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/metrics"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/notifier"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/punish"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/rules"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/store"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/trust"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/watchdog"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/window"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the bootstrap config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "guardian: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	boot, err := config.LoadBootstrap(configPath)
	if err != nil {
		return err
	}
	if boot.Bot.Token == "" {
		return fmt.Errorf("no bot token configured (set bot.token or DISCORD_TOKEN)")
	}

	if err := logging.Init(boot.Logger.Level, boot.Logger.Directory, logging.RotationConfig{
		MaxSizeMB:  boot.Logger.MaxSizeMB,
		MaxBackups: boot.Logger.MaxBackups,
		MaxAgeDays: boot.Logger.MaxAgeDays,
		Compress:   boot.Logger.Compress,
	}); err != nil {
		return err
	}
	defer logging.Close()

	logging.Info("[MAIN] starting guardian")

	if err := os.MkdirAll(boot.Data.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := database.Open(boot.Data.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	cfgStore := config.NewStore(store.NewFileStore(filepath.Join(boot.Data.Dir, "moderation.json")))
	if err := cfgStore.Load(); err != nil {
		return fmt.Errorf("failed to load moderation config: %w", err)
	}

	registry := trust.NewRegistry(store.NewFileStore(filepath.Join(boot.Data.Dir, "trust.json")))
	if err := registry.Load(); err != nil {
		return fmt.Errorf("failed to load trust registry: %w", err)
	}

	session, err := bot.New(boot.Bot.Token)
	if err != nil {
		return err
	}

	attributor := audit.NewAttributor(audit.NewDiscordQuerier(session.Discord()), "")
	announcer := notifier.New(session.Discord())
	platform := punish.NewDiscordPlatform(session.Discord())
	executor := punish.NewExecutor(platform, registry, cfgStore, session.MemberRoles, announcer, db)
	engine := rules.NewEngine(cfgStore, registry, window.NewTracker(), attributor, executor, session.MemberRoles)

	bot.AttachHandlers(session, engine, cfgStore, announcer)

	if err := session.Connect(); err != nil {
		return err
	}
	defer session.Close()
	attributor.SetSelf(session.SelfID())

	handler := commands.NewHandler(cfgStore, registry, db)
	if err := handler.Register(session.Discord()); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	var exporter *metrics.Exporter
	if boot.Metrics.Enabled {
		exporter = metrics.NewExporter(boot.Metrics.ListenAddr)
		exporter.Start()
	}

	var wd *watchdog.Watchdog
	if boot.Watchdog.Enabled {
		wd = watchdog.New(time.Duration(boot.Watchdog.IntervalSec) * time.Second)
		wd.Start()
	}

	logging.Info("[MAIN] guardian is running, press Ctrl+C to stop")
	waitForShutdown()

	logging.Info("[MAIN] shutting down")
	if wd != nil {
		wd.Stop()
	}
	if exporter != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := exporter.Stop(ctx); err != nil {
			logging.Warn("[MAIN] metrics exporter shutdown: %v", err)
		}
	}
	return nil
}

func waitForShutdown() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
