package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bidding "auction-settlement/internal/biddingService"
	"auction-settlement/internal/config"
	"auction-settlement/internal/db"
	"auction-settlement/internal/finance"
	"auction-settlement/internal/notifier"
	"auction-settlement/internal/repository"
	"auction-settlement/internal/server"
	settlement "auction-settlement/internal/settlementService"
	"auction-settlement/internal/sweeper"
	"auction-settlement/utils"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load configuration", map[string]any{"error": err.Error()})
	}

	fees, err := cfg.FeeSchedule()
	if err != nil {
		utils.Fatal("invalid fee configuration", map[string]any{"error": err.Error()})
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		utils.Fatal("failed to open database", map[string]any{"db_path": cfg.DBPath, "error": err.Error()})
	}
	if err := db.Migrate(conn); err != nil {
		utils.Fatal("failed to run migrations", map[string]any{"error": err.Error()})
	}

	repo := repository.NewGormRepo(conn)

	calc := finance.NewCalculator(fees)
	settlementSvc := settlement.NewSettlementService(repo, calc, buildNotifier(cfg))
	biddingSvc := bidding.NewBiddingService(repo)

	sw := sweeper.New(repo, settlementSvc, cfg.SweepInterval, cfg.SweepBatchLimit)
	sw.Start()

	router := server.SetupRouter(biddingSvc, settlementSvc, sw)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		utils.Info("starting auction settlement server", map[string]any{
			"port":           cfg.Port,
			"sweep_interval": cfg.SweepInterval.String(),
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Info("shutting down", nil)
	sw.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Error("forced shutdown", map[string]any{"error": err.Error()})
	}
}

// buildNotifier returns the email notifier when SMTP is configured and the
// log-only notifier otherwise, so local runs need no mail server.
func buildNotifier(cfg *config.Config) notifier.Notifier {
	if cfg.SMTPHost == "" {
		utils.Info("SMTP not configured, settlement notices will be logged only", nil)
		return notifier.NewLogNotifier()
	}
	return notifier.NewSMTPNotifier(notifier.EmailConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUsername,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.MailFrom,
		FromName:    cfg.MailFromName,
	})
}
