package objpath

import (
	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// S3 backend defaults, used when a path's URI and options supply none
	S3Region          string `env:"OBJPATH_S3_REGION,default:us-east-1"`
	S3Endpoint        string `env:"OBJPATH_S3_ENDPOINT"`
	S3AccessKeyID     string `env:"OBJPATH_S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"OBJPATH_S3_SECRET_ACCESS_KEY"`
	S3ForcePathStyle  bool   `env:"OBJPATH_S3_FORCE_PATH_STYLE,default:false"`

	// StagingDir is where staged transfer files are created.
	// Empty means the system temp directory.
	StagingDir string `env:"OBJPATH_STAGING_DIR"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
