package config

import (
	"strings"

	"github.com/spf13/viper"
)

type DBConfig struct {
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	PoolSize int
}

type HTTPConfig struct {
	Port string
}

type LogConfig struct {
	Level string
}

// Config is built once in main and passed down by reference; nothing in the
// application reads the environment after startup.
type Config struct {
	DB   DBConfig
	HTTP HTTPConfig
	Log  LogConfig
}

func Load() *Config {
	v := viper.New()
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "catalog")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.pool_size", 50)
	v.SetDefault("http.port", "8000")
	v.SetDefault("log.level", "info")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{
		DB: DBConfig{
			DSN:      v.GetString("db.dsn"),
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
			PoolSize: v.GetInt("db.pool_size"),
		},
		HTTP: HTTPConfig{Port: v.GetString("http.port")},
		Log:  LogConfig{Level: v.GetString("log.level")},
	}
}

// BuildDSN returns DB_DSN verbatim when set, otherwise assembles a key=value
// DSN from the discrete fields.
func (c DBConfig) BuildDSN() string {
	if strings.TrimSpace(c.DSN) != "" {
		return c.DSN
	}
	return "host=" + c.Host + " user=" + c.User + " password=" + c.Password +
		" dbname=" + c.Name + " port=" + c.Port + " sslmode=" + c.SSLMode
}
