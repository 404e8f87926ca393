package main

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/crediflow/crediflow/cmd"
	"github.com/crediflow/crediflow/config"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

//go:embed templates/email/template.html
//go:embed templates/i18n
var templates embed.FS

var (
	Version   = "?"
	BuildTime = "?"
	GitCommit = "-"
	GitRef    = "-"
)

func main() {
	//version info
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("crediflow %s, built %s from %s (%s)", Version, BuildTime, GitCommit, GitRef)
		return
	}
	logger := bootstrap()
	defer func() {
		_ = logger.Sync()

	}()
	cmd.TopLevelLogger = logger
	cmd.Execute()
}

func bootstrap() *zap.Logger {
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Error loading .env file")
		}
	}
	cfg := zap.NewProductionConfig()
	if r := os.Getenv("DEBUG_LOG"); r == "true" {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		log.Fatal(err)
	}
	cobra.OnInitialize(func() { initConfig(logger) })
	return logger
}

func setDefaults() {
	viper.SetDefault("smtp.enabled", false)
	viper.SetDefault("behaviour.default-locale", "en")
	viper.SetDefault("behaviour.password-min-length", 8)
	viper.SetDefault("behaviour.recovery-token-expiry", "1h")
	viper.SetDefault("jwt.exp", "900s")
	viper.SetDefault("jwt.refresh-token-expiry", "168h")
}

func initConfig(logger *zap.Logger) {
	bind := func(from string, to string) {
		err := viper.BindEnv(to, from)
		if err != nil {
			logger.Error("unable to bindenv", zap.String("from", from), zap.String(to, to), zap.Error(err))
		}

	}
	setDefaults()
	bind("PORT", "server.port")
	bind("ADDRESS", "server.address")

	bind("CREDIFLOW_PORT", "server.port")
	bind("CREDIFLOW_ADDRESS", "server.address")

	bind("CREDIFLOW_SMTP_ENABLED", "smtp.enabled")
	bind("CREDIFLOW_SMTP_HOST", "smtp.host")
	bind("CREDIFLOW_SMTP_PORT", "smtp.port")
	bind("CREDIFLOW_SMTP_USERNAME", "smtp.username")
	bind("CREDIFLOW_SMTP_PASSWORD", "smtp.password")
	bind("CREDIFLOW_SMTP_DISPLAYNAME", "smtp.display-name")
	bind("CREDIFLOW_SMTP_ADDRESS", "smtp.address")

	bind("CREDIFLOW_DATABASE_TYPE", "database.type")
	bind("CREDIFLOW_DATABASE_DSN", "database.dsn")

	bind("CREDIFLOW_BEHAVIOUR_NAME", "behaviour.name")
	bind("CREDIFLOW_BEHAVIOUR_SITE", "behaviour.site")
	bind("CREDIFLOW_BEHAVIOUR_SERVICE_DOMAIN", "behaviour.service-domain")
	bind("CREDIFLOW_BEHAVIOUR_DEFAULT_LOCALE", "behaviour.default-locale")
	bind("CREDIFLOW_BEHAVIOUR_PASSWORD_MIN_LENGTH", "behaviour.password-min-length")
	bind("CREDIFLOW_BEHAVIOUR_RESET_PASSWORD_URL", "behaviour.reset-password-url")
	bind("CREDIFLOW_BEHAVIOUR_RECOVERY_TOKEN_EXPIRY", "behaviour.recovery-token-expiry")
	bind("CREDIFLOW_BEHAVIOUR_ADMIN_EMAIL", "behaviour.admin.email")
	bind("CREDIFLOW_BEHAVIOUR_ADMIN_PASSWORD", "behaviour.admin.password")

	bind("CREDIFLOW_JWT_AUDIENCE", "jwt.aud")
	bind("CREDIFLOW_JWT_ISSUER", "jwt.iss")
	bind("CREDIFLOW_JWT_ALG", "jwt.alg")
	bind("CREDIFLOW_JWT_EXP", "jwt.exp")
	bind("CREDIFLOW_JWT_REFRESH_EXP", "jwt.refresh-token-expiry")

	bind("CREDIFLOW_JWT_HMAC_SIGNING_KEY", "jwt.hmac-signing-key")
	bind("CREDIFLOW_JWT_HMAC_SIGNING_KEY_FILE", "jwt.hmac-signing-key-file")

	bind("CREDIFLOW_JWT_RSA_PRIVATE_KEY", "jwt.rsa-private-key")
	bind("CREDIFLOW_JWT_RSA_PRIVATE_KEY_FILE", "jwt.rsa-private-key-file")

	bind("CREDIFLOW_JWT_RSA_PUBLIC_KEY", "jwt.rsa-public-key")
	bind("CREDIFLOW_JWT_RSA_PUBLIC_KEY_FILE", "jwt.rsa-public-key-file")

	bind("CREDIFLOW_CORS_ALLOWED_ORIGINS", "cors.allowed-origins")
	bind("CREDIFLOW_CORS_ALLOWED_METHODS", "cors.allowed-methods")
	bind("CREDIFLOW_CORS_ALLOW_CREDENTIALS", "cors.allow-credentials")

	if cmd.ConfigFileLocation != "" {
		logger.Debug("Using supplied config file", zap.String("file", string(cmd.ConfigFileLocation)))
		viper.SetConfigFile(string(cmd.ConfigFileLocation))
	} else {
		path, err := os.Getwd()
		if err != nil {
			logger.Warn("Unable to get current working dir", zap.Error(err))
		}
		cobra.CheckErr(err)
		viper.AddConfigPath(path)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		logger.Debug("Looking for default config file")
	}
	//precedence: environment overwrites yml
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Debug("No confg file loaded")
	} else {
		logger.Debug("Config file loaded", zap.String("file", viper.ConfigFileUsed()))
	}

	conf := &config.Configuration{}
	err := viper.Unmarshal(conf)
	if err != nil {
		logger.Fatal("Unable to unmarshall config", zap.Error(err))
	}
	logger.Debug("Config loaded", zap.Any("config", conf))
	logger.Debug("Validating final config")
	if err = conf.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	cmd.LoadedConfig = conf

	email, err := fs.Sub(templates, "templates/email")
	if err != nil {
		logger.Fatal("Unable to open templates/email folder")
	}
	cmd.FileSystemsConfig = &config.FileSystems{
		I18n:  templates,
		Email: email,
	}
}
