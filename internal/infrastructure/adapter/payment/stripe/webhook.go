package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/payment"
)

// signatureTolerance bounds how far a webhook timestamp may sit from our
// clock in either direction; anything outside is treated as a replay
const signatureTolerance = 5 * time.Minute

// webhookEvent is the wire shape of a Stripe event envelope
type webhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// VerifyWebhook checks the Stripe-Signature header against the payload and
// decodes the event. The header carries a unix timestamp and one or more v1
// HMAC-SHA256 signatures over "<timestamp>.<payload>".
func (c *Client) VerifyWebhook(payload []byte, signature string) (*payment.Event, error) {
	timestamp, signatures, err := parseSignatureHeader(signature)
	if err != nil {
		return nil, err
	}

	skew := c.timeProvider.Now().Sub(time.Unix(timestamp, 0))
	if skew > signatureTolerance || skew < -signatureTolerance {
		return nil, fmt.Errorf("%w: timestamp outside tolerance", errs.ErrInvalidSignature)
	}

	expected := computeSignature(timestamp, payload, c.webhookSecret)
	matched := false
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, errs.ErrInvalidSignature
	}

	var raw webhookEvent
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: malformed event payload", errs.ErrInvalidSignature)
	}

	event := &payment.Event{
		ID:   raw.ID,
		Type: raw.Type,
	}

	switch {
	case strings.HasPrefix(raw.Type, "payment_intent."):
		var in apiIntent
		if err := json.Unmarshal(raw.Data.Object, &in); err != nil {
			return nil, fmt.Errorf("%w: malformed intent object", errs.ErrInvalidSignature)
		}
		event.Intent = intentFromAPI(&in)
	case strings.HasPrefix(raw.Type, "transfer."):
		var tr apiTransfer
		if err := json.Unmarshal(raw.Data.Object, &tr); err != nil {
			return nil, fmt.Errorf("%w: malformed transfer object", errs.ErrInvalidSignature)
		}
		event.Transfer = transferFromAPI(&tr)
	}

	return event, nil
}

// parseSignatureHeader splits "t=<ts>,v1=<sig>[,v1=<sig>...]" into its parts
func parseSignatureHeader(header string) (int64, []string, error) {
	var timestamp int64
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("%w: malformed timestamp", errs.ErrInvalidSignature)
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, fmt.Errorf("%w: missing timestamp or signature", errs.ErrInvalidSignature)
	}
	return timestamp, signatures, nil
}

// computeSignature produces the expected v1 signature for a payload
func computeSignature(timestamp int64, payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
