package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli/v3"

	"github.com/tzrikka/slackfaq/pkg/etcd"
	"github.com/tzrikka/slackfaq/pkg/http"
	"github.com/tzrikka/slackfaq/pkg/links/slack"
	"github.com/tzrikka/slackfaq/pkg/store"
	"github.com/tzrikka/slackfaq/pkg/thrippy"
	"github.com/tzrikka/xdg"
)

const (
	ConfigDirName  = "slackfaq"
	ConfigFileName = "config.toml"
)

func main() {
	// Environment variables that are already set take precedence over the ".env" file.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	buildInfo, _ := debug.ReadBuildInfo()
	configFilePath := configFile()

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "dev",
			Usage: "simple setup, but unsafe for production",
		},
	}
	flags = append(flags, http.Flags(configFilePath)...)
	flags = append(flags, slack.Flags(configFilePath)...)
	flags = append(flags, store.Flags(configFilePath)...)
	flags = append(flags, etcd.Flags(configFilePath)...)
	flags = append(flags, thrippy.Flags(configFilePath)...)

	cmd := &cli.Command{
		Name:    "slackfaq",
		Usage:   "Store and retrieve team FAQs with the /faq Slack slash command",
		Version: buildInfo.Main.Version,
		Flags:   flags,
		Action:  http.Start,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// configFile returns the path to the app's configuration file.
// It also creates an empty file if it doesn't already exist.
func configFile() altsrc.StringSourcer {
	path, err := xdg.CreateFile(xdg.ConfigHome, ConfigDirName, ConfigFileName)
	if err != nil {
		log.Fatal().Err(err).Caller().Send()
	}
	return altsrc.StringSourcer(path)
}
