package config

import "github.com/spf13/viper"

type Config struct {
	ServerPort    string  `mapstructure:"SERVER_PORT"`
	PostgresURL   string  `mapstructure:"POSTGRES_URL"`
	RedisAddr     string  `mapstructure:"REDIS_ADDR"`
	RedisPassword string  `mapstructure:"REDIS_PASSWORD"`
	JWTSecret     string  `mapstructure:"JWT_SECRET"`
	AccessCode    string  `mapstructure:"ACCESS_CODE"`
	BaseURL       string  `mapstructure:"BASE_URL"`
	QREndpoint    string  `mapstructure:"QR_ENDPOINT"`
	MapsAPIKey    string  `mapstructure:"MAPS_API_KEY"`
	ProximityKm   float64 `mapstructure:"PROXIMITY_KM"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("POSTGRES_URL", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("ACCESS_CODE", "dev-access-code")
	viper.SetDefault("BASE_URL", "https://capequest.example")
	viper.SetDefault("QR_ENDPOINT", "https://api.qrserver.com/v1/create-qr-code/")
	viper.SetDefault("PROXIMITY_KM", 0.1)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
