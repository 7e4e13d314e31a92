package devops

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

const (
	DefaultCooldownSeconds     = 60
	DefaultAutoCloseAfterHours = 12
)

// RuntimeConfig carries the operational knobs of the check-in service. The
// cooldown and auto-close thresholds are configuration, not policy constants:
// they have changed between deployments before and will again.
type RuntimeConfig struct {
	DSN                 string `yaml:"dsn"`
	CooldownSeconds     int    `yaml:"cooldownSeconds"`
	AutoCloseAfterHours int    `yaml:"autoCloseAfterHours"`
	SigningSecret       string `yaml:"signingSecret"` // base64
	ExportBucket        string `yaml:"exportBucket"`
}

func (c *RuntimeConfig) Cooldown() time.Duration {
	seconds := c.CooldownSeconds
	if seconds <= 0 {
		seconds = DefaultCooldownSeconds
	}
	return time.Duration(seconds) * time.Second
}

func (c *RuntimeConfig) AutoCloseAfter() time.Duration {
	hours := c.AutoCloseAfterHours
	if hours <= 0 {
		hours = DefaultAutoCloseAfterHours
	}
	return time.Duration(hours) * time.Hour
}

var (
	once    sync.Once
	loaded  *RuntimeConfig
	loadErr error
)

// LoadConfig reads the yaml config from the SSM parameter named by
// CHECKIN_CONFIG_PARAMETER. Without a parameter name it falls back to plain
// environment variables, which is how local development runs.
func LoadConfig(ctx context.Context) (*RuntimeConfig, error) {
	once.Do(func() {
		paramName := os.Getenv("CHECKIN_CONFIG_PARAMETER")
		if paramName == "" {
			loaded = LoadConfigFromEnv()
			return
		}

		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(paramName),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}

		var parsed RuntimeConfig
		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}

		loaded = &parsed
	})

	return loaded, loadErr
}

func LoadConfigFromEnv() *RuntimeConfig {
	cooldown, _ := strconv.Atoi(os.Getenv("CHECKIN_COOLDOWN_SECONDS"))
	autoClose, _ := strconv.Atoi(os.Getenv("CHECKIN_AUTOCLOSE_AFTER_HOURS"))

	return &RuntimeConfig{
		DSN:                 os.Getenv("DSN"),
		CooldownSeconds:     cooldown,
		AutoCloseAfterHours: autoClose,
		SigningSecret:       os.Getenv("CHECKIN_SIGNING_SECRET"),
		ExportBucket:        os.Getenv("CHECKIN_EXPORT_BUCKET"),
	}
}
