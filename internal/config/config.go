package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // Store timezone must resolve on hosts without zoneinfo.

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Log      *LogConfig      `mapstructure:"log"`
	Database *DatabaseConfig `mapstructure:"database"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Store    *StoreConfig    `mapstructure:"store"`
	Mail     *MailConfig     `mapstructure:"mail"`
	Admin    *AdminConfig    `mapstructure:"admin"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	TokenTTL           time.Duration `mapstructure:"token_ttl"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.DB, c.Port, c.SSLMode, c.TimeZone)
}

// StoreConfig describes the shop itself: receipt header, reporting timezone
// and a few business defaults.
type StoreConfig struct {
	Name                  string   `mapstructure:"name"`
	Address               string   `mapstructure:"address"`
	Phone                 string   `mapstructure:"phone"`
	Footer                []string `mapstructure:"footer"`
	Timezone              string   `mapstructure:"timezone"`
	LowStockThreshold     int      `mapstructure:"low_stock_threshold"`
	DefaultMemberDiscount int      `mapstructure:"default_member_discount"`
	TopProducts           int      `mapstructure:"top_products"`
}

func (c *StoreConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation(%q) -> %w", c.Timezone, err)
	}
	return loc, nil
}

type MailConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	From     string        `mapstructure:"from"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// AdminConfig is the account provisioned when the users table is empty.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

const devSigningKey = "dev-signing-key"

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("api.jwt_signing_key", devSigningKey)
	v.SetDefault("api.token_ttl", 12*time.Hour)
	v.SetDefault("api.shutdown_timeout", 10*time.Second)

	v.SetDefault("gin.mode", "debug")
	v.SetDefault("log.level", "info")

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.sqlite_path", "pos.db")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.db", "pos")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.timezone", "Asia/Jakarta")

	v.SetDefault("store.name", "Toko Baju Keren")
	v.SetDefault("store.address", "Jl. Merdeka No. 123, Kota Fiksi")
	v.SetDefault("store.phone", "(021) 555-1234")
	v.SetDefault("store.footer", []string{
		"Terima kasih telah berbelanja!",
		"Barang yang sudah dibeli tidak dapat dikembalikan.",
	})
	v.SetDefault("store.timezone", "Asia/Jakarta")
	v.SetDefault("store.low_stock_threshold", 5)
	v.SetDefault("store.default_member_discount", 0)
	v.SetDefault("store.top_products", 5)

	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.host", "localhost")
	v.SetDefault("mail.port", 25)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "noreply@localhost")
	v.SetDefault("mail.timeout", 15*time.Second)

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file at path. A missing file is not an error, the
// defaults and environment still apply.
func Load(path string) (*AppConfig, error) {
	v := newViper(path)
	if err := readInConfig(v); err != nil {
		return nil, err
	}

	return decode(v)
}

// Watch calls onChange with the reloaded config whenever the file at path
// is written. Decode failures are passed to onErr and the old config stays.
func Watch(path string, onChange func(*AppConfig), onErr func(error)) error {
	v := newViper(path)
	if err := readInConfig(v); err != nil {
		return err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		conf, err := decode(v)
		if err != nil {
			onErr(err)
			return
		}
		onChange(conf)
	})
	v.WatchConfig()

	return nil
}

func readInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("v.ReadInConfig -> %w", err)
	}
	return nil
}

func decode(v *viper.Viper) (*AppConfig, error) {
	var conf AppConfig
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

func (c *AppConfig) Validate() error {
	if c.API.Environment == "production" && (c.API.JWTSigningKey == "" || c.API.JWTSigningKey == devSigningKey) {
		return errors.New("api.jwt_signing_key must be set in production")
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	if c.Store.LowStockThreshold < 0 {
		return errors.New("store.low_stock_threshold must not be negative")
	}
	if c.Store.DefaultMemberDiscount < 0 || c.Store.DefaultMemberDiscount > 100 {
		return errors.New("store.default_member_discount must be between 0 and 100")
	}
	if c.Store.TopProducts <= 0 {
		return errors.New("store.top_products must be positive")
	}
	if _, err := c.Store.Location(); err != nil {
		return err
	}

	return nil
}
