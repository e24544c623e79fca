package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"settings-console/internal/api"
	"settings-console/internal/apiclient"
	"settings-console/internal/conf"
	"settings-console/internal/database"
	"settings-console/internal/querycache"
	"settings-console/internal/repository"
	"settings-console/internal/service"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 設定 Log 格式與層級
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})

	// 1. Config
	flags, err := conf.Flags(os.Args[1:])
	if err != nil {
		logrus.Fatalf("Flag error: %v", err)
	}
	cfg, v, err := conf.LoadConfig(flags)
	if err != nil {
		logrus.Fatalf("Config error: %v", err)
	}
	conf.ApplyLogLevel(cfg.Log.Level)

	// 2. Upstream API + 快取
	client, err := apiclient.New(cfg.API.BaseURL, cfg.API.Token, cfg.API.Timeout)
	if err != nil {
		logrus.Fatalf("API client error: %v", err)
	}
	cache := querycache.New(cfg.Cache.StaleTime)

	// 3. 草稿儲存：有 MongoDB 就用，否則放記憶體
	var drafts repository.DraftRepository
	if cfg.MongoDB.URI != "" {
		db, err := database.Open(context.Background(), cfg.MongoDB)
		if err != nil {
			logrus.Fatalf("Database error: %v", err)
		}
		defer database.Close(db)
		drafts = repository.NewMongoDraftRepo(db)
	} else {
		logrus.Warn("[Mongo] 未設定 mongodb.uri，草稿只保存在記憶體")
		drafts = repository.NewMemoryDraftRepo()
	}

	// 4. Dependency Injection (Service -> Handler)
	var sslOpts []service.SSLOption
	if cfg.SSL.VerifyCloudflare {
		sslOpts = append(sslOpts, service.WithVerifier(service.NewCloudflareVerifier()))
	}
	if cfg.SSL.WhoisLookup {
		sslOpts = append(sslOpts, service.WithRegistrationLookup(service.NewWhoisLookup(10*time.Second), cfg.SSL.WhoisStaleTime))
	}

	settingsService := service.NewNotificationSettingsService(client, cache, drafts)
	auditService := service.NewAuditService(client, cache, cfg.Notifications.AuditPageSize)
	dispatcher := service.NewTestDispatcher(client, cfg.Notifications.TestRatePerSecond)
	sslService := service.NewSSLService(client, cache, cfg.SSL.WarnDays, sslOpts...)
	authService := service.NewAuthService(cfg.Auth.Username, cfg.Auth.PasswordHash, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if cfg.Auth.PasswordHash == "" || cfg.Auth.JWTSecret == "" {
		logrus.Warn("[Config] auth.password_hash 或 auth.jwt_secret 未設定，無法登入")
	}

	refresher := service.NewSSLRefresher(sslService)
	if err := refresher.Start(cfg.Refresh.SSLSchedule); err != nil {
		logrus.Fatalf("Cron error: %v", err)
	}
	defer refresher.Stop()

	// 設定檔變更時重新套用 log 層級與排程
	v.OnConfigChange(func(e fsnotify.Event) {
		logrus.Infof("[Config] 偵測到設定檔變更: %s", e.Name)
		next, err := conf.Decode(v)
		if err != nil {
			logrus.Errorf("[Config] 重新載入失敗: %v", err)
			return
		}
		conf.ApplyLogLevel(next.Log.Level)
		if err := refresher.Reload(next.Refresh.SSLSchedule); err != nil {
			logrus.Errorf("[Config] 排程未更新: %v", err)
		}
	})
	if v.ConfigFileUsed() != "" {
		v.WatchConfig()
	}

	flash := api.NewFlasher(cfg.Auth.JWTSecret, cfg.Auth.SecureCookie)
	handlers := api.Handlers{
		Auth:          api.NewAuthHandler(authService, flash, cfg.Auth.SecureCookie),
		Notifications: api.NewNotificationHandler(settingsService, auditService, dispatcher, flash),
		SSL:           api.NewSSLHandler(sslService, flash),
		Tools:         api.NewToolHandler(flash),
	}

	// 5. Gin Router Setup
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r, err := api.NewRouter(authService, handlers, cfg.Auth.SecureCookie)
	if err != nil {
		logrus.Fatalf("Template error: %v", err)
	}

	srv := &http.Server{Addr: cfg.Server.Port, Handler: r}
	go func() {
		logrus.Infof("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server shutdown error: %v", err)
	}
}
