package slack

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	"github.com/tzrikka/slackfaq/pkg/faq"
)

const (
	timeout = 3 * time.Second

	methodDialogOpen = "dialog.open"
)

// Client calls Slack's Web API with a bot token.
type Client struct {
	api *slack.Client
}

// NewClient initializes a Slack Web API client. The API URL is optional,
// and should be set only to override Slack's default ("https://slack.com/api/").
func NewClient(botToken, apiURL string) *Client {
	opts := []slack.Option{slack.OptionHTTPClient(&http.Client{Timeout: timeout})}
	if apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	return &Client{api: slack.New(botToken, opts...)}
}

// OpenFAQDialog opens the "Create a new FAQ" dialog for the user who
// triggered a slash command. Errors are of type [*faq.TransportError],
// with a non-empty SlackError if Slack itself rejected the call.
func (c *Client) OpenFAQDialog(ctx context.Context, triggerID, title string) error {
	l := zerolog.Ctx(ctx).With().Str("slack_method", methodDialogOpen).Logger()

	err := c.api.OpenDialogContext(ctx, triggerID, NewFAQDialog(title))
	if err == nil {
		l.Debug().Msg("opened FAQ dialog")
		return nil
	}

	te := &faq.TransportError{Method: methodDialogOpen, Err: err}
	var resp slack.SlackErrorResponse
	if errors.As(err, &resp) {
		te.SlackError = resp.Err
	}

	l.Err(err).Str("slack_error", te.SlackError).Msg("failed to open FAQ dialog")
	return te
}
