package http

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/urfave/cli/v3"

	"github.com/tzrikka/slackfaq/pkg/commands"
	"github.com/tzrikka/slackfaq/pkg/intake"
	"github.com/tzrikka/slackfaq/pkg/links/slack"
	"github.com/tzrikka/slackfaq/pkg/store"
)

// Start initializes the FAQ server's logging, secrets,
// entry store, and Slack client, and runs its HTTP server.
func Start(ctx context.Context, cmd *cli.Command) error {
	initLog(cmd.Bool("dev"))
	ctx = log.Logger.WithContext(ctx)

	sec, err := loadSecrets(ctx, cmd)
	if err != nil {
		return err
	}

	s, closeStore, err := store.Open(ctx, cmd)
	if err != nil {
		log.Err(err).Msg("failed to initialize the FAQ store")
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn().Err(err).Msg("failed to close the FAQ store")
		}
	}()

	router := commands.NewRouter(s, slack.NewClient(sec.botToken, cmd.String("slack-api-url")))
	log.Info().Strs("verbs", router.Verbs()).Msg("slash command router initialized")

	return newHTTPServer(cmd, sec, router, intake.New(s)).run()
}

// initLog initializes the logger for the FAQ server,
// based on whether it's running in development mode or not.
func initLog(devMode bool) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	if !devMode {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Caller().Logger()
		return
	}

	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05.000",
	}).With().Caller().Logger()

	log.Warn().Msg("********** DEV MODE - UNSAFE IN PRODUCTION! **********")
}
