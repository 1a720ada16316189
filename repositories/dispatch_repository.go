package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
)

// DispatchRepository sends a phishing artifact through an external delivery
// channel (email or chat). Channel endpoints are the delivery adapters'
// ingestion urls; the adapters themselves are out of scope.
type DispatchRepository struct {
	channelUrls map[models.ChannelType]string
	httpClient  *http.Client
}

func NewDispatchRepository(channelUrls map[models.ChannelType]string, timeout time.Duration) *DispatchRepository {
	return &DispatchRepository{
		channelUrls: channelUrls,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type dispatchPayload struct {
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
}

type dispatchReceipt struct {
	ReceiptId string `json:"receipt_id"`
}

// Dispatch delivers content to the recipient on the given channel and
// returns the delivery receipt id.
func (repo *DispatchRepository) Dispatch(ctx context.Context,
	channel models.ChannelType, recipient, content string,
) (string, error) {
	channelUrl, ok := repo.channelUrls[channel]
	if !ok {
		return "", errors.Wrapf(models.BadParameterError, "no dispatch endpoint for channel %s", channel)
	}

	payload, err := json.Marshal(dispatchPayload{
		Recipient: recipient,
		Content:   content,
	})
	if err != nil {
		return "", err
	}

	logger := utils.LoggerFromContext(ctx)

	var receipt dispatchReceipt
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, channelUrl, bytes.NewReader(payload))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := repo.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 500 {
				return errors.Newf("dispatch endpoint returned status %d", resp.StatusCode)
			}
			if resp.StatusCode >= 400 {
				return retry.Unrecoverable(errors.Newf("dispatch endpoint rejected payload with status %d", resp.StatusCode))
			}
			return json.NewDecoder(resp.Body).Decode(&receipt)
		},
		retry.Attempts(3),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.WarnContext(ctx, "Retrying dispatch", "channel", channel, "attempt", n, "error", err)
		}),
	)
	if err != nil {
		return "", errors.Wrap(models.ErrUpstreamUnavailable, err.Error())
	}
	return receipt.ReceiptId, nil
}
