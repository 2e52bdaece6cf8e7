package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config concentra toda la configuracion por variables de entorno.
// Si DB_DSN viene vacio el servicio corre en modo mock (repos in-memory).
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseDSN string `env:"DB_DSN"`

	// Latencia artificial de los repos in-memory, para que los estados de
	// carga del UI se ejerciten con timing realista en demo/offline.
	MockLatency time.Duration `env:"MOCK_LATENCY" envDefault:"0ms"`

	// Verificador de tokens remoto (IAM externo). Vacio => sesiones locales.
	AuthVerifyURL string `env:"AUTH_VERIFY_URL"`
	AuthAPIKey    string `env:"AUTH_API_KEY"`

	// Almacenamiento de fotos: memory | s3
	BlobDriver  string `env:"BLOB_DRIVER" envDefault:"memory"`
	S3Bucket    string `env:"BLOB_S3_BUCKET"`
	S3Region    string `env:"BLOB_S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"BLOB_S3_ENDPOINT"`
	S3PathStyle bool   `env:"BLOB_S3_PATH_STYLE"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME" envDefault:"infovet"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
