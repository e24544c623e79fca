package conf

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig
	API           APIConfig
	Auth          AuthConfig
	Cache         CacheConfig
	SSL           SSLConfig
	Refresh       RefreshConfig
	Notifications NotificationsConfig
	MongoDB       MongoConfig
	Log           LogConfig
}

type ServerConfig struct {
	Port  string
	Debug bool
}

// APIConfig 指向上游設定 API
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	Username     string        `mapstructure:"username"`
	PasswordHash string        `mapstructure:"password_hash"` // bcrypt
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

type CacheConfig struct {
	StaleTime time.Duration `mapstructure:"stale_time"`
}

type SSLConfig struct {
	VerifyCloudflare bool          `mapstructure:"verify_cloudflare"`
	WhoisLookup      bool          `mapstructure:"whois_lookup"`
	WhoisStaleTime   time.Duration `mapstructure:"whois_stale_time"`
	WarnDays         int           `mapstructure:"warn_days"`
}

// RefreshConfig 到期告警門檻與頁面共用 ssl.warn_days
type RefreshConfig struct {
	SSLSchedule string `mapstructure:"ssl_schedule"`
}

type NotificationsConfig struct {
	TestRatePerSecond float64 `mapstructure:"test_rate_per_second"`
	AuditPageSize     int     `mapstructure:"audit_page_size"`
}

// MongoConfig 草稿儲存；URI 為空時改用記憶體
type MongoConfig struct {
	URI      string
	Database string
}

type LogConfig struct {
	Level string
}

// Flags 註冊命令列參數
func Flags(args []string) (*pflag.FlagSet, error) {
	fs := pflag.NewFlagSet("console", pflag.ContinueOnError)
	fs.String("config", "", "path to config file (default ./config/config.yaml)")
	fs.String("port", "", "listen address, e.g. :8080")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs, nil
}

// setDefaults 每個 key 都需要預設值，AutomaticEnv 才會在 Unmarshal 時生效
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.debug", false)
	v.SetDefault("api.base_url", "http://localhost:3000/api")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("auth.username", "admin")
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.secure_cookie", false)
	v.SetDefault("auth.token_ttl", 12*time.Hour)
	v.SetDefault("cache.stale_time", 30*time.Second)
	v.SetDefault("ssl.verify_cloudflare", false)
	v.SetDefault("ssl.whois_lookup", false)
	v.SetDefault("ssl.whois_stale_time", 12*time.Hour)
	v.SetDefault("ssl.warn_days", 14)
	v.SetDefault("refresh.ssl_schedule", "@every 30m")
	v.SetDefault("notifications.test_rate_per_second", 1.0)
	v.SetDefault("notifications.audit_page_size", 10)
	v.SetDefault("mongodb.uri", "")
	v.SetDefault("mongodb.database", "settings_console")
	v.SetDefault("log.level", "info")
}

// LoadConfig 讀取設定檔 + 環境變數 + 命令列參數
func LoadConfig(fs *pflag.FlagSet) (*Config, *viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	path := ""
	if fs != nil {
		path, _ = fs.GetString("config")
		if f := fs.Lookup("port"); f != nil {
			if err := v.BindPFlag("server.port", f); err != nil {
				return nil, nil, err
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("./config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("CONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, nil, err
		}
		logrus.Warn("[Config] 找不到設定檔，使用預設值與環境變數")
	}

	cfg, err := Decode(v)
	if err != nil {
		return nil, nil, err
	}
	logrus.Infof("[Config] 設定檔讀取成功 (%s)", v.ConfigFileUsed())
	return cfg, v, nil
}

// Decode 將 viper 內容轉成 Config (重新載入時也會用到)
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Notifications.AuditPageSize <= 0 {
		cfg.Notifications.AuditPageSize = 10
	}
	return &cfg, nil
}

// ApplyLogLevel 設定 logrus 層級，無效值則維持原層級
func ApplyLogLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("[Config] 未知的 log 層級 %q，維持 %s", level, logrus.GetLevel())
		return
	}
	logrus.SetLevel(lvl)
}
