package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the intake service
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Mail     MailConfig     `yaml:"mail"`
	Redis    RedisConfig    `yaml:"redis"`
	Brand    BrandConfig    `yaml:"brand"`
	Document DocumentConfig `yaml:"document"`
	Intake   IntakeConfig   `yaml:"intake"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port                   int      `yaml:"port"`
	Host                   string   `yaml:"host"`
	AllowedOrigins         []string `yaml:"allowed_origins"`
	ShutdownTimeoutSeconds int      `yaml:"shutdown_timeout_seconds"`
}

// GetHost returns the server host, with ECS detection
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// Addr is the listen address for http.Server.
func (c ServerConfig) Addr() string {
	return c.GetHost() + ":" + strconv.Itoa(c.Port)
}

// ShutdownTimeout bounds graceful shutdown.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig selects where application records are kept.
type DatabaseConfig struct {
	Driver        string `yaml:"driver"` // postgres, dynamodb or memory
	URL           string `yaml:"url"`
	MaxOpenConns  int    `yaml:"max_open_conns"`
	DynamoDBTable string `yaml:"dynamodb_table"`
	AWSRegion     string `yaml:"aws_region"`
	AWSProfile    string `yaml:"aws_profile"`
}

// StorageConfig selects where rendered application documents are kept.
type StorageConfig struct {
	Type       string `yaml:"type"` // local or s3
	LocalPath  string `yaml:"local_path"`
	S3Bucket   string `yaml:"s3_bucket"`
	S3Prefix   string `yaml:"s3_prefix"`
	AWSRegion  string `yaml:"aws_region"`
	AWSProfile string `yaml:"aws_profile"` // Empty string uses default credential chain (IAM role on ECS)
}

// GetAWSProfile returns the AWS profile, with environment variable override
func (c StorageConfig) GetAWSProfile() string {
	return awsProfile(c.AWSProfile)
}

// GetAWSProfile returns the AWS profile, with environment variable override
func (c DatabaseConfig) GetAWSProfile() string {
	return awsProfile(c.AWSProfile)
}

func awsProfile(configured string) string {
	if envProfile := os.Getenv("AWS_PROFILE_OVERRIDE"); envProfile != "" {
		if envProfile == "none" || envProfile == "iam" {
			return "" // Use default credential chain (IAM role)
		}
		return envProfile
	}
	// On ECS/Lambda, don't use a profile - use IAM role
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return ""
	}
	return configured
}

// MailConfig holds the confirmation email transport.
type MailConfig struct {
	Provider       string `yaml:"provider"` // smtp, ses or none
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	From           string `yaml:"from"`
	Secure         bool   `yaml:"secure"` // implicit TLS instead of STARTTLS
	AttachDocument bool   `yaml:"attach_document"`
	SESRegion      string `yaml:"ses_region"`
	SESAccessKey   string `yaml:"ses_access_key"` // both empty: default credential chain
	SESSecretKey   string `yaml:"ses_secret_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the dial timeout as a duration
func (c MailConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RedisConfig is optional; with no URL the rate limiter is off and the
// migrate lock falls back to Postgres.
type RedisConfig struct {
	URL                string `yaml:"url"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

// BrandConfig is the wording printed on documents and in emails.
type BrandConfig struct {
	BankName    string `yaml:"bank_name"`
	DisplayName string `yaml:"display_name"` // email sign-off
	ShortName   string `yaml:"short_name"`
	CardBrand   string `yaml:"card_brand"`
	Product     string `yaml:"product"`
	Title       string `yaml:"title"`
	LogoPath    string `yaml:"logo_path"`
}

// DocumentConfig controls PDF output.
type DocumentConfig struct {
	Compress bool `yaml:"compress"`
}

// IntakeConfig controls the submission pipeline.
type IntakeConfig struct {
	// IsolateRenderFailures turns a document failure into a warning
	// instead of failing the submission.
	IsolateRenderFailures bool `yaml:"isolate_render_failures"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level     string `yaml:"level"`
	RedactPII bool   `yaml:"redact_pii"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Booleans that default to true are seeded before decoding; yaml leaves
	// them alone when the key is absent.
	cfg := Config{
		Mail:     MailConfig{AttachDocument: true},
		Document: DocumentConfig{Compress: true},
		Log:      LogConfig{RedactPII: true},
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.ShutdownTimeoutSeconds == 0 {
		cfg.Server.ShutdownTimeoutSeconds = 15
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.DynamoDBTable == "" {
		cfg.Database.DynamoDBTable = "card_applications"
	}
	if cfg.Database.AWSRegion == "" {
		cfg.Database.AWSRegion = "us-east-1"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.LocalPath == "" {
		cfg.Storage.LocalPath = "public/pdfs"
	}
	if cfg.Storage.AWSRegion == "" {
		cfg.Storage.AWSRegion = "us-east-1"
	}
	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = "smtp"
	}
	if cfg.Mail.Host == "" {
		cfg.Mail.Host = "smtp.office365.com"
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 587
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = "FBC Bank <reports@outrisk.co.zw>"
	}
	if cfg.Mail.SESRegion == "" {
		cfg.Mail.SESRegion = "us-east-1"
	}
	if cfg.Mail.TimeoutSeconds == 0 {
		cfg.Mail.TimeoutSeconds = 30
	}
	if cfg.Brand.BankName == "" {
		cfg.Brand.BankName = "FBC BANK LIMITED"
	}
	if cfg.Brand.DisplayName == "" {
		cfg.Brand.DisplayName = "FBC Bank Limited"
	}
	if cfg.Brand.ShortName == "" {
		cfg.Brand.ShortName = "FBC"
	}
	if cfg.Brand.CardBrand == "" {
		cfg.Brand.CardBrand = "MASTERCARD"
	}
	if cfg.Brand.Product == "" {
		cfg.Brand.Product = "MasterCard"
	}
	if cfg.Brand.Title == "" {
		cfg.Brand.Title = "FBC MASTERCARD PREMIUM CARDS APPLICATION FORM"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars on ECS.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Mail transport; names match the deployed environment
	if v := os.Getenv("EMAIL_HOST"); v != "" {
		cfg.Mail.Host = v
	}
	if v := os.Getenv("EMAIL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Mail.Port = port
		}
	}
	if v := os.Getenv("EMAIL_SERVER_SECURE"); v != "" {
		cfg.Mail.Secure = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("EMAIL_SERVER_USER"); v != "" {
		cfg.Mail.Username = v
	}
	if v := os.Getenv("EMAIL_SERVER_PASSWORD"); v != "" {
		cfg.Mail.Password = v
	}
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		cfg.Mail.From = v
	}

	if v := os.Getenv("AWS_SES_ACCESS_KEY"); v != "" {
		cfg.Mail.SESAccessKey = v
	}
	if v := os.Getenv("AWS_SES_SECRET_KEY"); v != "" {
		cfg.Mail.SESSecretKey = v
	}
	if v := os.Getenv("MAIL_PROVIDER"); v != "" {
		cfg.Mail.Provider = v
	}

	// Database override (critical for ECS deployment where config.yaml has local defaults)
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.Storage.S3Bucket = v
		cfg.Storage.Type = "s3"
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return cfg, nil
}
