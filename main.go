package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shercoin/shercoin/config"
	"github.com/shercoin/shercoin/economy"
	"github.com/shercoin/shercoin/models"
	"github.com/shercoin/shercoin/routes"
	"github.com/shercoin/shercoin/seed"
	"github.com/shercoin/shercoin/storage"
	"github.com/shercoin/shercoin/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Balance{},
		&models.Boost{},
		&models.BoostGrant{},
		&models.Task{},
		&models.TaskProgress{},
		&models.Article{},
		&models.ArticleCompletion{},
		&models.Referral{},
		&models.Transaction{},
		&models.PromoCode{},
		&models.PromoRedemption{},
		&models.DailyLogin{},
	)

	if err := seed.Run(db); err != nil {
		utils.Sugar.Fatalf("catalog seeding failed: %v", err)
	}

	engine := economy.NewEngine(storage.NewGormStore(db))
	r := routes.SetupRouter(engine)

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		utils.Sugar.Infof("Starting server on port %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Sugar.Fatalf("server stopped with error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Sugar.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Sugar.Errorf("forced shutdown: %v", err)
	}
}
