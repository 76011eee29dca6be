package runner

import (
	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds driver settings tuned through the environment rather than
// flags.
type Config struct {
	// ReportEvery logs progress every Nth iteration in single-run mode.
	ReportEvery int `env:"CFRPLUSMATRIX_REPORT_EVERY" env-default:"1"`
	// ProgressBar toggles the batch-mode progress bar.
	ProgressBar bool `env:"CFRPLUSMATRIX_PROGRESS_BAR" env-default:"true"`
}

// LoadConfig reads driver settings from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
