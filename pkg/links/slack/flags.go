package slack

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

// Flags defines CLI flags for the Slack app's secrets and API access. These
// flags can also be set using environment variables and the application's
// configuration file. Secrets may also be stored in a Thrippy link instead.
func Flags(configFilePath altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "slack-verification-token",
			Usage: "Slack app's verification token, to authenticate inbound requests",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_TOKEN"),
				toml.TOML("slack.verification_token", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "slack-signing-secret",
			Usage: "Slack app's signing secret, to also verify the signatures of inbound requests (optional)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_SIGNING_SECRET"),
				toml.TOML("slack.signing_secret", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "slack-bot-token",
			Usage: "Slack app's bot token, to open dialogs",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_ACCESS_TOKEN"),
				toml.TOML("slack.bot_token", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "slack-api-url",
			Usage: "override Slack's Web API base URL (e.g. for testing)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_API_URL"),
				toml.TOML("slack.api_url", configFilePath),
			),
		},
	}
}
