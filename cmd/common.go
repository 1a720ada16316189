package cmd

import (
	"time"

	"github.com/lurelab/lurelab-backend/infra"
	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/utils"
)

const appName = "lurelab-backend"

func loadPgConfig() infra.PgConfig {
	return infra.PgConfig{
		ConnectionString:   utils.GetEnv("PG_CONNECTION_STRING", ""),
		Database:           utils.GetEnv("PG_DATABASE", "lurelab"),
		Hostname:           utils.GetEnv("PG_HOSTNAME", ""),
		Password:           utils.GetEnv("PG_PASSWORD", ""),
		Port:               utils.GetEnv("PG_PORT", "5432"),
		User:               utils.GetEnv("PG_USER", ""),
		MaxPoolConnections: utils.GetEnv("PG_MAX_POOL_SIZE", infra.DEFAULT_MAX_CONNECTIONS),
		SslMode:            utils.GetEnv("PG_SSL_MODE", "prefer"),
	}
}

func loadLlmConfig() infra.LlmConfig {
	return infra.LlmConfig{
		ProviderType: infra.LlmProviderType(utils.GetEnv("LLM_PROVIDER", string(infra.LlmProviderTypeOpenAI))),
		Model:        utils.GetEnv("LLM_MODEL", "gpt-4o-mini"),
		BaseUrl:      utils.GetEnv("LLM_BASE_URL", ""),
		ApiKey:       utils.GetEnv("LLM_API_KEY", ""),
		Project:      utils.GetEnv("LLM_PROJECT", ""),
		Location:     utils.GetEnv("LLM_LOCATION", ""),
	}
}

func loadSpeechConfig() infra.SpeechConfig {
	return infra.SpeechConfig{
		GoogleApplicationCredentials: utils.GetEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		SynthesisUrl:                 utils.GetEnv("SPEECH_SYNTHESIS_URL", ""),
		AudioBucketUrl:               utils.GetEnv("AUDIO_BUCKET_URL", "file:///tmp/lurelab-audio"),
		Timeout:                      utils.GetEnv("SPEECH_TIMEOUT", 10*time.Second),
	}
}

func loadDispatchConfig() infra.DispatchConfig {
	channelUrls := make(map[models.ChannelType]string)
	if url := utils.GetEnv("DISPATCH_EMAIL_URL", ""); url != "" {
		channelUrls[models.ChannelEmail] = url
		channelUrls[models.ChannelCallEmail] = url
	}
	if url := utils.GetEnv("DISPATCH_CHAT_URL", ""); url != "" {
		channelUrls[models.ChannelChatMessage] = url
		channelUrls[models.ChannelCallChat] = url
	}
	if url := utils.GetEnv("DISPATCH_SMS_URL", ""); url != "" {
		channelUrls[models.ChannelCallSms] = url
	}
	return infra.DispatchConfig{
		ChannelUrls: channelUrls,
		Timeout:     utils.GetEnv("DISPATCH_TIMEOUT", 10*time.Second),
	}
}

func loadCallConfig() models.CallConfig {
	return models.CallConfig{
		VerdictDelay:    utils.GetEnv("CALL_VERDICT_DELAY", 2*time.Minute),
		StalledGrace:    utils.GetEnv("CALL_STALLED_GRACE", 5*time.Minute),
		UpstreamTimeout: utils.GetEnv("CALL_UPSTREAM_TIMEOUT", 10*time.Second),
	}
}

func loadReconciliationConfig() models.ReconciliationConfig {
	return models.ReconciliationConfig{
		ClockSkewCompensation: utils.GetEnv("REPORT_CLOCK_SKEW_COMPENSATION", 10*time.Minute),
	}
}

func loadScoringConfig() models.ScoringConfig {
	return models.ScoringConfig{
		MinAggregateSample: utils.GetEnv("SCORE_MIN_AGGREGATE_SAMPLE", 5),
	}
}
