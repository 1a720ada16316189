package infra

import (
	"fmt"
	"time"

	"github.com/lurelab/lurelab-backend/models"
)

const DEFAULT_MAX_CONNECTIONS = 20

type PgConfig struct {
	ConnectionString   string
	Database           string
	Hostname           string
	Password           string
	Port               string
	User               string
	MaxPoolConnections int
	SslMode            string
}

func (config PgConfig) GetConnectionString() string {
	if config.ConnectionString != "" {
		return config.ConnectionString
	}

	if config.SslMode == "" {
		config.SslMode = "prefer"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s database=%s sslmode=%s",
		config.Hostname, config.Port, config.User, config.Password, config.Database, config.SslMode)
}

type LlmProviderType string

const (
	LlmProviderTypeOpenAI   LlmProviderType = "openai"
	LlmProviderTypeAIStudio LlmProviderType = "aistudio"
)

type LlmConfig struct {
	ProviderType LlmProviderType
	Model        string
	BaseUrl      string
	ApiKey       string
	Project      string
	Location     string
}

type SpeechConfig struct {
	GoogleApplicationCredentials string
	SynthesisUrl                 string
	AudioBucketUrl               string
	Timeout                      time.Duration
}

type DispatchConfig struct {
	ChannelUrls map[models.ChannelType]string
	Timeout     time.Duration
}
