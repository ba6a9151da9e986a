package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Smartnaka/SkulBell/internal/config"
	"github.com/Smartnaka/SkulBell/internal/domain"
	"github.com/Smartnaka/SkulBell/internal/notify"
	"github.com/Smartnaka/SkulBell/internal/scheduler"
	"github.com/Smartnaka/SkulBell/internal/seed"
	"github.com/Smartnaka/SkulBell/internal/store"
	"github.com/Smartnaka/SkulBell/internal/telegram"
	"github.com/Smartnaka/SkulBell/internal/tracker"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server
	repo    store.Repo
	trk     *tracker.Tracker
	router  *telegram.Router
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting skulbell",
		zap.String("http", a.cfg.HTTPAddr),
		zap.String("db", a.cfg.DBPath),
	)

	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath, a.log)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready")

	notifier := notify.NewTelegram(a.bot, a.cfg.ChatID, a.log)
	a.trk = tracker.New(repo, notifier, a.log)
	a.trk.Subscribe(func(ls []domain.Lecture) {
		a.log.Info("schedule updated", zap.Int("lectures", len(ls)))
	})
	a.trk.LoadSnapshot(ctx)

	if err := a.applySeed(ctx); err != nil {
		a.log.Warn("seed file not applied", zap.Error(err))
	}

	a.router = telegram.NewRouter(a.bot, a.log, a.trk, repo, a.cfg.ChatID)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher := scheduler.New(repo, notifier, a.trk, a.log, a.cfg.DispatchInterval, a.cfg.DigestCron)
	go dispatcher.Run(ctx)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			if a.repo != nil {
				_ = a.repo.Close()
			}
			return nil

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}

// applySeed populates an empty store from the configured YAML file.
// A non-empty store is never touched.
func (a *App) applySeed(ctx context.Context) error {
	if a.cfg.SeedFile == "" || len(a.trk.Lectures()) > 0 {
		return nil
	}
	lectures, err := seed.Load(a.cfg.SeedFile, a.log)
	if err != nil {
		return err
	}
	for _, l := range lectures {
		if _, err := a.trk.Add(ctx, l); err != nil {
			a.log.Warn("seed lecture rejected", zap.String("title", l.Title), zap.Error(err))
		}
	}
	a.log.Info("seed applied", zap.Int("count", len(lectures)))
	return nil
}
