package boot

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env         string `env:"ENV,default=dev"`
	BaseURL     string `env:"BASE_URL,required"`
	FrontendURL string `env:"FRONTEND_URL,default=http://localhost:3000"`
	Server      struct {
		Port        string `env:"PORT,default=8080"`
		MetricsPort string `env:"METRICS_PORT,default=8081"`
		Origins     string `env:"ALLOWED_ORIGINS,required"`
	}
	Database struct {
		Path string `env:"DATABASE_PATH,required"`
	}
	JWT struct {
		AccessSecret  string `env:"JWT_SECRET,required"`
		RefreshSecret string `env:"JWT_REFRESH_SECRET,required"`
	}
	Redis struct {
		Addr     string `env:"REDIS_ADDR"`
		Password string `env:"REDIS_PASSWORD"`
	}
	SMTP struct {
		Host        string `env:"SMTP_HOST"`
		Port        string `env:"SMTP_PORT,default=587"`
		Username    string `env:"SMTP_USERNAME"`
		Password    string `env:"SMTP_PASSWORD"`
		From        string `env:"EMAIL_FROM,default=noreply@skillswap.local"`
		TemplateDir string `env:"MAIL_TEMPLATE_DIR,default=mail/templates"`
	}
	Media struct {
		Bucket    string `env:"MEDIA_BUCKET"`
		Region    string `env:"MEDIA_REGION,default=us-east-1"`
		Endpoint  string `env:"MEDIA_ENDPOINT"`
		AccessKey string `env:"MEDIA_ACCESS_KEY"`
		SecretKey string `env:"MEDIA_SECRET_KEY"`
	}
}

func Load() (*Config, error) {
	config := &Config{}
	if err := envconfig.Process(context.Background(), config); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}
	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "dev"
}

func (c *Config) AllowedOrigins() []string {
	return strings.Split(c.Server.Origins, ",")
}
