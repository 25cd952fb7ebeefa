package http

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

const (
	DefaultWebhookPort          = 14480
	DefaultHealthCheckUserAgent = "GoogleHC/"
)

// Flags defines CLI flags to configure the HTTP server. These flags can also
// be set using environment variables and the application's configuration file.
func Flags(configFilePath altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "webhook-port",
			Usage: "local port number for the slash command and dialog webhooks",
			Value: DefaultWebhookPort,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_FAQ_PORT"),
				toml.TOML("http.webhook_port", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "health-check-user-agent",
			Usage: "prefix of the User-Agent header that identifies health-check probes",
			Value: DefaultHealthCheckUserAgent,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("HEALTH_CHECK_USER_AGENT"),
				toml.TOML("http.health_check_user_agent", configFilePath),
			),
		},
	}
}
