package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// App holds the process-level configuration, read from the environment.
type App struct {
	Port       string `envconfig:"PORT" default:"8080"`
	AWSRegion  string `envconfig:"AWS_REGION" default:"us-east-1"`
	S3Bucket   string `envconfig:"S3_BUCKET_NAME"`
	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"*"`
}

// Load reads a .env file if present (ok if missing in prod), then the environment.
func Load() (App, error) {
	_ = godotenv.Load()
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
