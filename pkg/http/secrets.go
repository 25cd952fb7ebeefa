package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/tzrikka/slackfaq/pkg/thrippy"
)

// Keys of the Slack app's secrets in a Thrippy link's credentials.
const (
	thrippyVerificationToken = "verification_token"
	thrippySigningSecret     = "signing_secret"
	thrippyBotToken          = "bot_token"
)

type secrets struct {
	verificationToken string
	signingSecret     string // Optional.
	botToken          string
}

// loadSecrets reads the Slack app's secrets from the CLI flags (or their
// environment variables and configuration file), and fills in missing
// ones from a Thrippy link, if one is configured.
func loadSecrets(ctx context.Context, cmd *cli.Command) (secrets, error) {
	s := secrets{
		verificationToken: cmd.String("slack-verification-token"),
		signingSecret:     cmd.String("slack-signing-secret"),
		botToken:          cmd.String("slack-bot-token"),
	}

	if id := cmd.String("thrippy-link-id"); id != "" {
		creds, err := thrippy.SecureCreds(cmd)
		if err != nil {
			return s, err
		}
		m, err := thrippy.LinkSecrets(ctx, cmd.String("thrippy-server-addr"), creds, id)
		if err != nil {
			return s, fmt.Errorf("failed to get Slack secrets from Thrippy: %w", err)
		}
		if m == nil {
			return s, fmt.Errorf("Thrippy link not found: %s", id)
		}
		s = s.merge(m)
	}

	l := zerolog.Ctx(ctx)
	if s.verificationToken == "" {
		return s, errors.New("missing Slack verification token")
	}
	if s.botToken == "" {
		l.Warn().Msg("missing Slack bot token, the add command will fail")
	}
	if s.signingSecret == "" {
		l.Info().Msg("no Slack signing secret, authenticating requests with the verification token only")
	}

	return s, nil
}

// merge fills in empty secrets with the values of a Thrippy link's credentials.
func (s secrets) merge(m map[string]string) secrets {
	if s.verificationToken == "" {
		s.verificationToken = m[thrippyVerificationToken]
	}
	if s.signingSecret == "" {
		s.signingSecret = m[thrippySigningSecret]
	}
	if s.botToken == "" {
		s.botToken = m[thrippyBotToken]
	}
	return s
}
