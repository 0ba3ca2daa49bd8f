package stripe

import (
	"fmt"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/payment"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/infrastructure/config"
	coremocks "github.com/amirhossein-jamali/ticket-marketplace/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test"

func newTestClient(now time.Time) *Client {
	tp := new(coremocks.MockTimeProvider)
	tp.On("Now").Return(now)

	logger := new(coremocks.MockLogger)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()

	return NewClient(&config.StripeConfig{
		BaseURL:        "https://api.stripe.com",
		SecretKey:      "sk_test_123",
		WebhookSecret:  testWebhookSecret,
		RequestTimeout: time.Second,
	}, logger, tp)
}

func signedHeader(ts int64, payload []byte) string {
	return fmt.Sprintf("t=%d,v1=%s", ts, computeSignature(ts, payload, testWebhookSecret))
}

func TestVerifyWebhook(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	client := newTestClient(now)

	intentPayload := []byte(`{
		"id": "evt_1",
		"type": "payment_intent.payment_failed",
		"data": {
			"object": {
				"id": "pi_123",
				"status": "requires_payment_method",
				"amount": 11000,
				"currency": "usd",
				"metadata": {"listingId": "10", "buyerId": "2"}
			}
		}
	}`)

	t.Run("valid signature decodes an intent event", func(t *testing.T) {
		event, err := client.VerifyWebhook(intentPayload, signedHeader(now.Unix(), intentPayload))

		require.NoError(t, err)
		assert.Equal(t, "evt_1", event.ID)
		assert.Equal(t, payment.EventPaymentFailed, event.Type)
		require.NotNil(t, event.Intent)
		assert.Equal(t, "pi_123", event.Intent.ID)
		assert.Equal(t, int64(11000), event.Intent.AmountMinor)
		assert.Equal(t, "10", event.Intent.Metadata[payment.MetaListingID])
		assert.Nil(t, event.Transfer)
	})

	t.Run("transfer event decodes the transfer object", func(t *testing.T) {
		payload := []byte(`{
			"id": "evt_2",
			"type": "transfer.paid",
			"data": {
				"object": {
					"id": "tr_1",
					"amount": 10000,
					"currency": "usd",
					"metadata": {"transactionId": "55"}
				}
			}
		}`)

		event, err := client.VerifyWebhook(payload, signedHeader(now.Unix(), payload))

		require.NoError(t, err)
		assert.Equal(t, payment.EventTransferPaid, event.Type)
		require.NotNil(t, event.Transfer)
		assert.Equal(t, "tr_1", event.Transfer.ID)
		assert.Equal(t, "55", event.Transfer.Metadata[payment.MetaTransactionID])
		assert.Nil(t, event.Intent)
	})

	t.Run("tampered payload is rejected", func(t *testing.T) {
		header := signedHeader(now.Unix(), intentPayload)
		tampered := append([]byte{}, intentPayload...)
		tampered[len(tampered)-2] = 'x'

		_, err := client.VerifyWebhook(tampered, header)

		assert.ErrorIs(t, err, errs.ErrInvalidSignature)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		ts := now.Unix()
		header := fmt.Sprintf("t=%d,v1=%s", ts, computeSignature(ts, intentPayload, "whsec_other"))

		_, err := client.VerifyWebhook(intentPayload, header)

		assert.ErrorIs(t, err, errs.ErrInvalidSignature)
	})

	t.Run("stale timestamp is a replay", func(t *testing.T) {
		ts := now.Add(-6 * time.Minute).Unix()

		_, err := client.VerifyWebhook(intentPayload, signedHeader(ts, intentPayload))

		assert.ErrorIs(t, err, errs.ErrInvalidSignature)
	})

	t.Run("timestamp just inside tolerance passes", func(t *testing.T) {
		ts := now.Add(-4 * time.Minute).Unix()

		_, err := client.VerifyWebhook(intentPayload, signedHeader(ts, intentPayload))

		assert.NoError(t, err)
	})

	t.Run("future timestamp is rejected", func(t *testing.T) {
		ts := now.Add(6 * time.Minute).Unix()

		_, err := client.VerifyWebhook(intentPayload, signedHeader(ts, intentPayload))

		assert.ErrorIs(t, err, errs.ErrInvalidSignature)
	})

	t.Run("slightly ahead clock is tolerated", func(t *testing.T) {
		ts := now.Add(4 * time.Minute).Unix()

		_, err := client.VerifyWebhook(intentPayload, signedHeader(ts, intentPayload))

		assert.NoError(t, err)
	})

	t.Run("multiple v1 signatures accept any match", func(t *testing.T) {
		ts := now.Unix()
		header := fmt.Sprintf("t=%d,v1=%s,v1=%s",
			ts,
			computeSignature(ts, intentPayload, "whsec_rotated_out"),
			computeSignature(ts, intentPayload, testWebhookSecret))

		_, err := client.VerifyWebhook(intentPayload, header)

		assert.NoError(t, err)
	})

	t.Run("malformed headers", func(t *testing.T) {
		for _, header := range []string{
			"",
			"t=abc,v1=deadbeef",
			"v1=deadbeef",
			fmt.Sprintf("t=%d", now.Unix()),
		} {
			_, err := client.VerifyWebhook(intentPayload, header)
			assert.ErrorIs(t, err, errs.ErrInvalidSignature, header)
		}
	})

	t.Run("valid signature over a non-JSON payload is rejected", func(t *testing.T) {
		payload := []byte("not json")

		_, err := client.VerifyWebhook(payload, signedHeader(now.Unix(), payload))

		assert.ErrorIs(t, err, errs.ErrInvalidSignature)
	})
}
