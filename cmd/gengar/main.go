package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gengar/internal/analytics"
	"gengar/internal/catalog"
	"gengar/internal/commands"
	"gengar/internal/config"
	"gengar/internal/llm"
	"gengar/internal/logging"
	"gengar/internal/router"
	"gengar/internal/scheduler"
	"gengar/internal/session"
	"gengar/internal/storage"
	"gengar/internal/voice"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfgPath := os.Getenv("GENGAR_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.json"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		if cfg == nil {
			log.Fatalf("failed to load config: %v", err)
		}
		// Recoverable: malformed file or failed default persist, defaults in use
		log.Printf("Warning: %v (continuing with defaults)", err)
	}

	logger, err := logging.New(cfg.LogDir, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		log.Fatalf("failed to init logging: %v", err)
	}
	defer func() { _ = logger.Close() }()

	sess := session.New()
	cat := catalog.New()
	registry := commands.NewRegistry(cfg, logger)

	var rec storage.Recorder
	if cfg.CommandLogPath != "" {
		fr, err := storage.NewFileRecorder(cfg.CommandLogPath)
		if err != nil {
			logger.Errorf("failed to init file recorder: %v", err)
		} else {
			rec = fr
		}
	}

	var sum storage.SummaryWriter
	if cfg.SummaryDir != "" {
		sw, err := storage.NewFileSummaryWriter(cfg.SummaryDir)
		if err != nil {
			logger.Errorf("failed to init summary writer: %v", err)
		} else {
			sum = sw
		}
	}

	factory := llm.NewFactory(cfg)
	model, err := factory.CreateClient(cfg.AIProvider, cfg.AIModel)
	if err != nil {
		logger.Errorf("failed to create model client, canned responses only: %v", err)
		model = nil
	}
	if model == nil {
		logger.Infof("no model credentials configured, canned responses only")
	}

	var speaker voice.Speaker = voice.Noop{}
	voiceActive := false
	if cfg.VoiceEnabled {
		engine, err := voice.NewEngine(cfg, logger)
		if err != nil {
			logger.Warnf("🎤 voice disabled for this session: %v", err)
		} else {
			speaker = engine
			voiceActive = true
			logger.Infof("🎤 voice engine %s initialized", cfg.VoiceEngine)
		}
	}

	r := router.New(router.Deps{
		Catalog:      cat,
		Registry:     registry,
		Model:        model,
		Session:      sess,
		Recorder:     rec,
		Summary:      sum,
		Speaker:      speaker,
		Log:          logger,
		SystemPrompt: readSystemPrompt(cfg.SystemPromptPath, logger),
		ModelName:    cfg.AIModel,
		VoiceEnabled: voiceActive,
	}, os.Stdout)

	sched := scheduler.New(logger)
	if rec != nil {
		sched.SetReportFunction(reportFunc(rec, logger))
		if err := sched.Start(cfg.ReportSchedule); err != nil {
			logger.Errorf("failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("G.E.N.G.A.R initialized successfully")
	if err := r.Run(ctx, os.Stdin); err != nil {
		fmt.Printf("❌ Fatal error: %v\n", err)
		logger.Errorf("fatal error: %v", err)
		os.Exit(1)
	}
}

func readSystemPrompt(path string, logger *logging.Logger) string {
	if path == "" {
		return llm.DefaultSystemPrompt
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warnf("system prompt file unreadable at %s: %v", path, err)
		}
		return llm.DefaultSystemPrompt
	}
	return strings.TrimSpace(string(data))
}

func reportFunc(rec storage.Recorder, logger *logging.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		events, err := rec.LoadInteractions()
		if err != nil {
			return err
		}
		stats := analytics.SummarizeDay(events, time.Now().UTC())
		logger.Infof("📊 %s", stats.Format())
		return nil
	}
}
