package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type PaymentConfig struct {
	Env           string `yaml:"env" env-default:"local"`
	HTTPServer    `yaml:"http_server"`
	PaymentDB     `yaml:"payment_db"`
	LogConfig     `yaml:"log_config"`
	KafkaService  `yaml:"kafka-service"`
	WalletService `yaml:"wallet-service"`
	Policy        `yaml:"policy"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type PaymentDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type WalletService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// Policy carries the money-splitting and escrow thresholds so deployments
// can tune them without a code change. Defaults are the production values.
type Policy struct {
	CommissionRate         float64 `yaml:"commission_rate" env-default:"0.09"`
	PSPFeeRate             float64 `yaml:"psp_fee_rate" env-default:"0.039"`
	PSPFeeFixed            float64 `yaml:"psp_fee_fixed" env-default:"0.30"`
	EscrowAmountThreshold  float64 `yaml:"escrow_amount_threshold" env-default:"500"`
	EscrowMinDurationDays  int     `yaml:"escrow_min_duration_days" env-default:"7"`
	EscrowMinSellerHistory int64   `yaml:"escrow_min_seller_history" env-default:"5"`
	EscrowHoldDays         int     `yaml:"escrow_hold_days" env-default:"7"`
}

func MustLoad() *PaymentConfig {

	// Processing env config variable and file
	configPath := os.Getenv("PAYMENT_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("PAYMENT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg PaymentConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
