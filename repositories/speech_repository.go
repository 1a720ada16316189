package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lurelab/lurelab-backend/models"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// SpeechRepository carries the two spoken-audio capabilities of the call
// orchestrator: synthesizing the caller's lines and transcribing recorded
// employee audio. The telephony transport playing and capturing the audio is
// out of scope; both directions exchange audio through blob handles.
type SpeechRepository struct {
	speechClient *speech.Client
	blob         BlobRepository
	bucketUrl    string
	ttsUrl       string
	httpClient   *http.Client
}

func NewSpeechRepository(
	speechClient *speech.Client,
	blobRepository BlobRepository,
	bucketUrl string,
	ttsUrl string,
	timeout time.Duration,
) *SpeechRepository {
	return &SpeechRepository{
		speechClient: speechClient,
		blob:         blobRepository,
		bucketUrl:    bucketUrl,
		ttsUrl:       ttsUrl,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

type synthesizeRequest struct {
	Text           string `json:"text"`
	VoiceProfileId string `json:"voice_profile_id"`
}

// SynthesizeSpeech renders text with the given voice profile and stores the
// audio, returning the blob key as the audio handle.
func (repo *SpeechRepository) SynthesizeSpeech(ctx context.Context, text, voiceProfileId string) (string, error) {
	payload, err := json.Marshal(synthesizeRequest{
		Text:           text,
		VoiceProfileId: voiceProfileId,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, repo.ttsUrl, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := repo.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(models.ErrUpstreamUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrapf(models.ErrUpstreamUnavailable,
			"speech synthesis returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(models.ErrUpstreamUnavailable, err.Error())
	}

	audioKey := fmt.Sprintf("calls/audio/%s.wav", uuid.New())
	if err := repo.blob.PutBlob(ctx, repo.bucketUrl, audioKey, audio); err != nil {
		return "", err
	}
	return audioKey, nil
}

// TranscribeSpeech reads a stored audio handle and transcribes it.
func (repo *SpeechRepository) TranscribeSpeech(ctx context.Context, audioKey string) (string, error) {
	reader, err := repo.blob.GetBlob(ctx, repo.bucketUrl, audioKey)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	audio, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	resp, err := repo.speechClient.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			LanguageCode:               "en-US",
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", errors.Wrap(models.ErrUpstreamUnavailable, err.Error())
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		if transcript.Len() > 0 {
			transcript.WriteString(" ")
		}
		transcript.WriteString(result.Alternatives[0].Transcript)
	}
	return transcript.String(), nil
}
