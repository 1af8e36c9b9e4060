package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	ClientURL   string
	DatabaseDSN string

	AccessSecret      string
	AccessTokenTTLMin int

	KafkaBroker   string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailFromName string

	CloudinaryURL string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	return Config{
		ServerPort:  os.Getenv("SERVER_PORT"),
		ClientURL:   os.Getenv("CLIENT_URL"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		AccessSecret:      os.Getenv("ACCESS_SECRET"),
		AccessTokenTTLMin: intEnv("ACCESS_TOKEN_TTL_MIN", 60),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    os.Getenv("KAFKA_TOPIC"),
		KafkaGroupID:  os.Getenv("KAFKA_GROUP_ID"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: os.Getenv("MAIL_FROM_NAME"),

		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
	}
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
