// Package http implements the FAQ server's webhook endpoint: it
// authenticates inbound Slack requests, and dispatches them either
// to the slash command router or to the dialog submission intake.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
	"github.com/urfave/cli/v3"

	"github.com/tzrikka/slackfaq/pkg/commands"
	"github.com/tzrikka/slackfaq/pkg/faq"
)

const (
	timeout = 3 * time.Second
	maxSize = 64 << 10 // 64 KiB.
)

type commandHandler interface {
	Handle(ctx context.Context, r commands.Request) commands.Response
}

type submissionHandler interface {
	Submit(ctx context.Context, cb slack.InteractionCallback) (*slack.DialogInputValidationErrors, error)
}

type httpServer struct {
	httpPort      int    // To initialize the HTTP server.
	healthCheckUA string // Prefix of the User-Agent header of readiness probes.

	secrets  secrets
	commands commandHandler
	intake   submissionHandler
}

func newHTTPServer(cmd *cli.Command, sec secrets, c commandHandler, i submissionHandler) *httpServer {
	return &httpServer{
		httpPort:      cmd.Int("webhook-port"),
		healthCheckUA: cmd.String("health-check-user-agent"),

		secrets:  sec,
		commands: c,
		intake:   i,
	}
}

func (s *httpServer) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", s.webhookHandler)
	mux.HandleFunc("/slack/faq", s.webhookHandler)
	return mux
}

// run starts an HTTP server to expose the webhook.
// This is blocking, to keep the FAQ server running.
func (s *httpServer) run() error {
	server := &http.Server{
		Addr:         net.JoinHostPort("", strconv.Itoa(s.httpPort)),
		Handler:      s.mux(),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	log.Info().Msgf("HTTP server listening on port %d", s.httpPort)
	err := server.ListenAndServe()
	if err != nil {
		log.Err(err).Send()
		return err
	}

	return nil
}

// webhookHandler authenticates and processes inbound slash
// commands and dialog submissions from Slack.
func (s *httpServer) webhookHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	l := log.With().Str("http_method", r.Method).Str("url_path", r.URL.EscapedPath()).Logger()
	l.Debug().Msg("received HTTP request")

	defer func() {
		if p := recover(); p != nil {
			l.Error().Err(fmt.Errorf("panic: %v", p)).Bytes("stack", debug.Stack()).Msg("internal error")
			w.WriteHeader(http.StatusInternalServerError)
		}
	}()

	if isHealthCheck(r, s.healthCheckUA) {
		writeJSON(l, w, map[string]string{"status": "ready"})
		return
	}

	if err := checkMethod(l, r); err != nil {
		writeError(w, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSize+1))
	if err != nil {
		l.Warn().Err(err).Msg("failed to read request body")
		writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	if len(body) > maxSize {
		l.Warn().Int("max_size", maxSize).Msg("request body too large")
		writeError(w, errTooLarge)
		return
	}

	req, err := parseRequest(r.Header.Get("Content-Type"), body)
	if err != nil {
		l.Warn().Err(err).Send()
		writeError(w, err)
		return
	}

	l = l.With().Str("request_kind", req.kind()).Logger()
	if err := s.authenticate(l, r, body, req); err != nil {
		writeError(w, err)
		return
	}

	ctx := l.WithContext(r.Context())
	switch req := req.(type) {
	case slashCommand:
		resp := s.commands.Handle(ctx, commands.Request{
			Text:      req.Text,
			TriggerID: req.TriggerID,
			UserName:  req.UserName,
		})
		writeJSON(l, w, resp)

	case dialogSubmission:
		errs, err := s.intake.Submit(ctx, req.InteractionCallback)
		if err != nil {
			writeError(w, err)
			return
		}
		if errs != nil {
			writeJSON(l, w, errs)
			return
		}
		// An empty 200 response closes the dialog.
		w.WriteHeader(http.StatusOK)
	}
}

// statusCode maps errors to HTTP status codes.
func statusCode(err error) int {
	switch {
	case errors.Is(err, faq.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, faq.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, errTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusCode(err))
}

func writeJSON(l zerolog.Logger, w http.ResponseWriter, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		l.Err(err).Msg("failed to encode JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(b); err != nil {
		l.Warn().Err(err).Msg("failed to write HTTP response")
	}
}
