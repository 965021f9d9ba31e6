package cmd

import (
	"time"

	"github.com/spf13/viper"
)

// Config carries every process setting. Values come from the environment,
// with a local .env file loaded by main beforehand, so development and
// production read the same keys.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost          string
	KafkaConsumerGroup string
	KafkaPaymentTopic  string

	SESRegion    string
	SESFromEmail string

	MinimumTransportCharge int64
	CodeExpirySlack        time.Duration
	OutboxRelayBatchSize   int

	OpenAPISpecPath string

	LogLevel  string
	LogFormat string
}

// LoadConfig reads configuration from the environment. Everything that is
// safe to default has one; credentials and addresses of external systems
// must be set explicitly.
func LoadConfig() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_HOST", "localhost:9092")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "dispatch")
	v.SetDefault("KAFKA_PAYMENT_TOPIC", "payment-events")
	v.SetDefault("SES_REGION", "ap-south-1")
	v.SetDefault("MINIMUM_TRANSPORT_CHARGE", 150)
	v.SetDefault("CODE_EXPIRY_SLACK", "2h")
	v.SetDefault("OUTBOX_RELAY_BATCH_SIZE", 100)
	v.SetDefault("OPENAPI_SPEC_PATH", "api/openapi.yml")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	return Config{
		HTTPPort:               v.GetString("HTTP_PORT"),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetString("DB_PORT"),
		DBUser:                 v.GetString("DB_USER"),
		DBPassword:             v.GetString("DB_PASSWORD"),
		DBName:                 v.GetString("DB_NAME"),
		DBSslMode:              v.GetString("DB_SSLMODE"),
		KafkaHost:              v.GetString("KAFKA_HOST"),
		KafkaConsumerGroup:     v.GetString("KAFKA_CONSUMER_GROUP"),
		KafkaPaymentTopic:      v.GetString("KAFKA_PAYMENT_TOPIC"),
		SESRegion:              v.GetString("SES_REGION"),
		SESFromEmail:           v.GetString("SES_FROM_EMAIL"),
		MinimumTransportCharge: v.GetInt64("MINIMUM_TRANSPORT_CHARGE"),
		CodeExpirySlack:        v.GetDuration("CODE_EXPIRY_SLACK"),
		OutboxRelayBatchSize:   v.GetInt("OUTBOX_RELAY_BATCH_SIZE"),
		OpenAPISpecPath:        v.GetString("OPENAPI_SPEC_PATH"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		LogFormat:              v.GetString("LOG_FORMAT"),
	}
}
