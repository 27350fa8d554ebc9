package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf holds the resolved application configuration.
// Precedence: environment variables > config/.env.<env> file > defaults.
var Conf Config

type (
	Config struct {
		Debug     bool
		TestMode  bool
		Env       string // DEV (local; default), TEST, QA, PROD
		Build     string
		AppName   string
		SecretKey string

		Server   ServerConfig
		Database DatabaseConfig

		DefaultFromEmail mail.Address
		AdminEmail       string // punishment alert recipient; alerts disabled if empty
		SendgridApiKey   string
		RollbarToken     string
	}

	ServerConfig struct {
		Addr                      string
		Host                      string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine        string // "inmem" (default) | "postgres"
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}
)

func (c DatabaseConfig) Address() string {
	return c.Host + ":" + c.Port
}

func init() {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Tathmini")
	v.SetDefault("secretKey", "w#3t9m)ah&q5dz(vjx^bk2!u8s*cel4f7ygp0rn6+io1_hd$")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("dbEngine", "inmem")
	v.SetDefault("dbHost", "localhost")
	v.SetDefault("dbPort", "5432")
	v.SetDefault("dbName", "tathmini")
	v.SetDefault("defaultFromEmail", "noreply@localhost")

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = Config{
		Debug:     v.GetBool("debug"),
		TestMode:  v.GetBool("testMode"),
		Env:       env,
		Build:     v.GetString("build"),
		AppName:   v.GetString("appName"),
		SecretKey: v.GetString("secretKey"),
		Server: ServerConfig{
			Addr:                      v.GetString("serverAddr"),
			Host:                      v.GetString("serverHost"),
			JWTExpirationDelta:        v.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("jwtRefreshExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("dbEngine"),
			Host:          v.GetString("dbHost"),
			Port:          v.GetString("dbPort"),
			Name:          v.GetString("dbName"),
			User:          v.GetString("dbUser"),
			Password:      v.GetString("dbPassword"),
			AdminUser:     v.GetString("dbAdminUser"),
			AdminPassword: v.GetString("dbAdminPassword"),
			DisableTLS:    v.GetBool("dbDisableTLS"),
		},
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		AdminEmail:       v.GetString("adminEmail"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
	}
}
