package config

import "time"

// AppName tags request contexts and published events.
const AppName = "velog-api"

type AppConfig struct {
	APIPort           string `env:"PORT,required" envDefault:"5000"`
	RabbitMQURL       string `env:"RABBITMQ_URL"`
	MetricsEnabled    bool   `env:"METRICS_ENABLED" envDefault:"true"`
	PlaygroundEnabled bool   `env:"PLAYGROUND_ENABLED" envDefault:"false"`
	MetricsAPIKey     string `env:"METRICS_API_KEY"`
}

type DatabaseConfig struct {
	Host            string `env:"POSTGRES_HOST,required"`
	Port            string `env:"POSTGRES_PORT,required" envDefault:"5432"`
	User            string `env:"POSTGRES_USER,required"`
	DBName          string `env:"POSTGRES_DB_NAME,required"`
	Password        string `env:"POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"POSTGRES_DB_MAX_CONN" envDefault:"100"`
	MaxIdleConn     int    `env:"POSTGRES_DB_MAX_IDLE_CONN" envDefault:"10"`
	ConnMaxLifetime int    `env:"POSTGRES_DB_CONN_MAX_LIFETIME" envDefault:"60"`
	LogLevel        string `env:"POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"POSTGRES_SSL_MODE" envDefault:"require"`
}

type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET,required"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
	AccessCookieName string        `env:"ACCESS_TOKEN_COOKIE" envDefault:"access_token"`
	CookieDomain     string        `env:"COOKIE_DOMAIN"`
}

type StorageConfig struct {
	// s3 or r2
	Provider        string        `env:"STORAGE_PROVIDER" envDefault:"s3"`
	Region          string        `env:"S3_REGION" envDefault:"ap-northeast-2"`
	AccountID       string        `env:"CLOUDFLARE_R2_ACCOUNT_ID"`
	AccessKeyID     string        `env:"S3_ACCESS_KEY_ID"`
	AccessKeySecret string        `env:"S3_ACCESS_KEY_SECRET"`
	ImageBucket     string        `env:"BUCKET_NAME_IMAGES" envDefault:"images.velog.io"`
	CDNDomain       string        `env:"IMAGES_CDN_DOMAIN" envDefault:"images.velog.io"`
	UploadURLTTL    time.Duration `env:"UPLOAD_URL_TTL" envDefault:"15m"`
}
