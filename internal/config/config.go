package config

import (
	"errors"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN         string `mapstructure:"dsn"`
		AutoMigrate bool   `mapstructure:"auto_migrate"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	GitHub struct {
		BaseURL  string        `mapstructure:"base_url"`
		Token    string        `mapstructure:"token"`
		Timeout  time.Duration `mapstructure:"timeout"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"github"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret         string        `mapstructure:"jwt_secret"`
		TokenLifespan     time.Duration `mapstructure:"token_lifespan"`
		OwnerEmail        string        `mapstructure:"owner_email"`
		OwnerPasswordHash string        `mapstructure:"owner_password_hash"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
	Resume struct {
		Renderer string `mapstructure:"renderer"`
		Locale   string `mapstructure:"locale"`
		FontPath string `mapstructure:"font_path"`
	} `mapstructure:"resume"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

// AuthEnabled reports whether profile writes require a bearer token.
func (c Config) AuthEnabled() bool {
	return c.Auth.JWTSecret != ""
}

// LoadConfig reads .env and config.yaml from the given directories (the working directory
// when none is given) and lets environment variables override both.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, 0, len(paths))
	for _, p := range paths {
		envFiles = append(envFiles, filepath.Join(p, ".env"))
	}
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use environment only.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, err
		}
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "PORT", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("db.auto_migrate", "DB_AUTO_MIGRATE")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("github.base_url", "GITHUB_BASE_URL")
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.timeout", "GITHUB_TIMEOUT")
	v.BindEnv("github.cache_ttl", "GITHUB_CACHE_TTL")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	v.BindEnv("auth.owner_email", "OWNER_EMAIL")
	v.BindEnv("auth.owner_password_hash", "OWNER_PASSWORD_HASH")
	v.BindEnv("jaeger.otlp_endpoint", "OTLP_ENDPOINT")
	v.BindEnv("resume.renderer", "RESUME_RENDERER")
	v.BindEnv("resume.locale", "RESUME_LOCALE")
	v.BindEnv("resume.font_path", "RESUME_FONT_PATH")
	v.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	// Comma separated lists arrive from the environment as a single element.
	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "3000")
	v.SetDefault("app.env", "development")
	v.SetDefault("db.auto_migrate", true)
	v.SetDefault("github.base_url", "https://api.github.com")
	v.SetDefault("github.timeout", 5*time.Second)
	v.SetDefault("github.cache_ttl", 10*time.Minute)
	v.SetDefault("auth.token_lifespan", 24*time.Hour)
	v.SetDefault("resume.renderer", "fpdf")
	v.SetDefault("resume.locale", "ru")
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
