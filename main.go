package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/api"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/auth"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/cache"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/config"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/database"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/notify"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/storage"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/store"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/telegram"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db) //nolint:errcheck

	if cfg.DBAutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal(err)
		}
	}

	ctx := context.Background()

	listCache, closeCache := newCache(ctx, cfg)
	defer closeCache()

	var (
		sinks []notify.Sink
		bus   *notify.NATS
	)
	if cfg.NatsURL != "" {
		bus, err = notify.NewNATS(cfg.NatsURL)
		if err != nil {
			log.Printf("NATS disabled: %v", err)
		} else {
			defer bus.Close()
			sinks = append(sinks, bus)
		}
	}
	if cfg.RevalidationURL != "" {
		sinks = append(sinks, notify.NewRevalidator(cfg.RevalidationURL, cfg.RevalidationSecret))
	} else {
		log.Println("NEXT_REVALIDATION_URL is not set")
	}
	events := notify.NewDispatcher(10*time.Second, sinks...)

	var uploads api.Uploader
	if cfg.S3.Enabled() {
		s3, err := storage.NewS3(ctx, cfg.S3)
		if err != nil {
			log.Fatal(err)
		}
		uploads = s3
	} else {
		log.Println("S3 is not configured, uploads are disabled")
	}

	bot := telegram.New(cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID)
	if !bot.Configured() {
		log.Println("TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID is not set, contact form will fail")
	}

	handlers := api.New(api.Options{
		Store:        store.New(db, cfg.Admin),
		Tokens:       auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL),
		Cache:        listCache,
		Events:       events,
		Telegram:     bot,
		Uploads:      uploads,
		Ping:         func(ctx context.Context) error { return database.Ping(ctx, db) },
		DashboardDir: cfg.DashboardDir,
	})

	// Writes on other instances invalidate this instance's lists too.
	if bus != nil {
		sub, err := bus.Subscribe(func(ev notify.Event) {
			handlers.Forget(ctx, ev.Resource)
		})
		if err != nil {
			log.Printf("NATS subscribe: %v", err)
		} else {
			defer sub.Unsubscribe() //nolint:errcheck
		}
	}

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.FrontendURLs,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      c.Handler(handlers.Router()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Golang backend running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	events.Wait()

	log.Println("Server exited")
}

// newCache builds the list cache selected by CACHE_DRIVER. A Redis that
// cannot be reached falls back to the in-process cache.
func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, func()) {
	switch cfg.CacheDriver {
	case "none":
		return cache.Nop{}, func() {}
	case "redis":
		r, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
		if err == nil {
			return r, func() { _ = r.Close() }
		}
		log.Printf("%v, using in-memory cache", err)
	}
	return cache.NewMemory(cfg.CacheTTL), func() {}
}
