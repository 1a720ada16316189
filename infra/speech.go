package infra

import (
	"context"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/cockroachdb/errors"
	"google.golang.org/api/option"
)

func NewSpeechClient(ctx context.Context, config SpeechConfig) (*speech.Client, error) {
	opts := []option.ClientOption{}
	if config.GoogleApplicationCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(config.GoogleApplicationCredentials))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create speech client")
	}
	return client, nil
}
