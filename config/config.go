package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
// Sane defaults are provided for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// MongoDB
	MongoURI     string
	MongoDB      string
	MongoTimeout time.Duration

	// Redis (rate limiting)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecret string
	JWTTTL    time.Duration

	// Cookies
	CookieDomain string
	CookieSecure bool

	// Rate limiting
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Geocoder
	GeocoderURL string
	GeocoderKey string

	// File uploads
	FileUploadDir string
	MaxFileUpload int64 // bytes

	// Google Cloud Storage (optional photo backend)
	GCSBucket              string
	GCSCredentialsJSONPath string

	// Mailgun
	MailgunDomain   string
	MailgunAPIKey   string
	MailgunSender   string
	MailSendEnabled bool

	// RabbitMQ (optional async email delivery)
	RabbitMQURL        string
	RabbitMQEmailQueue string

	// Links embedded in emails
	ResetPasswordURL string

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool

	// CORS
	CORSAllowedOrigins string // comma-separated
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "bootcamp-api"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		MongoURI:     getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getenv("MONGO_DB", "bootcamps"),
		MongoTimeout: getdur("MONGO_TIMEOUT", 10*time.Second),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		JWTSecret: getenv("JWT_SECRET", "devsecret"),
		JWTTTL:    getdur("JWT_TTL", 720*time.Hour),

		CookieDomain: getenv("COOKIE_DOMAIN", "localhost"),
		CookieSecure: getbool("COOKIE_SECURE", false),

		RateLimitMax:    getint("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getdur("RATE_LIMIT_WINDOW", 10*time.Minute),

		GeocoderURL: getenv("GEOCODER_URL", "https://www.mapquestapi.com/geocoding/v1/address"),
		GeocoderKey: getenv("GEOCODER_KEY", ""),

		FileUploadDir: getenv("FILE_UPLOAD_DIR", "public/uploads"),
		MaxFileUpload: int64(getint("MAX_FILE_UPLOAD", 1000000)),

		GCSBucket:              getenv("GCS_BUCKET", ""),
		GCSCredentialsJSONPath: getenv("GCS_CREDENTIALS_JSON", ""),

		MailgunDomain:   getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:   getenv("MAILGUN_API_KEY", ""),
		MailgunSender:   getenv("MAILGUN_SENDER", "noreply@bootcamp-api.dev"),
		MailSendEnabled: getbool("MAIL_SEND_ENABLED", true),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "emails"),

		ResetPasswordURL: getenv("RESET_PASSWORD_URL", "http://localhost:8080/reset-password"),

		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),
	}
}

// Production reports whether the app runs with a production configuration
func (c *Config) Production() bool {
	return c.Env == "production"
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
