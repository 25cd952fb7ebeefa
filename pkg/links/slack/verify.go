package slack

import (
	"fmt"
	"net/http"

	"github.com/slack-go/slack"
)

// VerifySignature checks the "X-Slack-Signature" and "X-Slack-Request-Timestamp"
// headers of an inbound request, based on the app's signing secret and the
// request's raw body. It also rejects stale timestamps, to prevent replay attacks.
func VerifySignature(headers http.Header, body []byte, signingSecret string) error {
	sv, err := slack.NewSecretsVerifier(headers, signingSecret)
	if err != nil {
		return fmt.Errorf("invalid request headers: %w", err)
	}

	if _, err := sv.Write(body); err != nil {
		return fmt.Errorf("HMAC write error: %w", err)
	}

	if err := sv.Ensure(); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}

	return nil
}
