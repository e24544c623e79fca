package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"settings-console/internal/conf"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

var (
	ErrNoURI      = errors.New("mongodb.uri is empty")
	ErrNoDatabase = errors.New("mongodb.database is empty")
)

// Open 連線並回傳草稿使用的 database；結束時呼叫 Close
func Open(ctx context.Context, cfg conf.MongoConfig) (*mongo.Database, error) {
	if cfg.URI == "" {
		return nil, ErrNoURI
	}
	if cfg.Database == "" {
		return nil, ErrNoDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("settings-console").
		SetServerSelectionTimeout(connectTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logrus.Infof("[Mongo] 已連線 (database=%s)", cfg.Database)
	return client.Database(cfg.Database), nil
}

// Close 中斷 database 所屬的連線
func Close(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Client().Disconnect(ctx); err != nil {
		logrus.Warnf("[Mongo] 中斷連線失敗: %v", err)
	}
}
