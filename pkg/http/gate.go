package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tzrikka/slackfaq/pkg/faq"
	"github.com/tzrikka/slackfaq/pkg/links/slack"
)

// isHealthCheck reports whether a request is a readiness probe, which
// doesn't require authentication. Probes are never POST requests.
func isHealthCheck(r *http.Request, userAgentPrefix string) bool {
	if r.Method == http.MethodPost || userAgentPrefix == "" {
		return false
	}
	return strings.HasPrefix(r.UserAgent(), userAgentPrefix)
}

func checkMethod(l zerolog.Logger, r *http.Request) error {
	if r.Method != http.MethodPost {
		l.Warn().Str("user_agent", r.UserAgent()).Msg("method not allowed")
		return faq.ErrMethodNotAllowed
	}
	return nil
}

// authenticate checks that a request came from Slack: its token must be
// equal to the app's verification token. If the app is also configured
// with a signing secret, the request's signature must match it too.
func (s *httpServer) authenticate(l zerolog.Logger, r *http.Request, body []byte, req request) error {
	want, got := s.secrets.verificationToken, req.token()
	if want == "" || got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		l.Warn().Bool("has_token", got != "").Bool("has_verification_token", want != "").
			Msg("unauthorized: invalid verification token")
		return faq.ErrUnauthorized
	}

	if s.secrets.signingSecret == "" {
		return nil
	}

	if err := slack.VerifySignature(r.Header, body, s.secrets.signingSecret); err != nil {
		l.Warn().Err(err).Msg("unauthorized: invalid request signature")
		return faq.ErrUnauthorized
	}

	return nil
}
