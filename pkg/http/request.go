package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/url"

	"github.com/slack-go/slack"
)

var (
	errBadRequest = errors.New("bad request")
	errTooLarge   = errors.New("request body too large")
)

// request is one of the two kinds of inbound Slack requests
// that share the same endpoint: [slashCommand] and [dialogSubmission].
type request interface {
	kind() string
	token() string
}

type slashCommand struct {
	slack.SlashCommand
}

func (slashCommand) kind() string {
	return "slash_command"
}

func (c slashCommand) token() string {
	return c.Token
}

type dialogSubmission struct {
	slack.InteractionCallback
}

func (dialogSubmission) kind() string {
	return "interaction"
}

func (d dialogSubmission) token() string {
	return d.Token
}

// jsonBody is the JSON equivalent of Slack's form-encoded webhook requests.
type jsonBody struct {
	Payload     string `json:"payload"`
	Token       string `json:"token"`
	TeamID      string `json:"team_id"`
	TeamDomain  string `json:"team_domain"`
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	Command     string `json:"command"`
	Text        string `json:"text"`
	ResponseURL string `json:"response_url"`
	TriggerID   string `json:"trigger_id"`
	APIAppID    string `json:"api_app_id"`
}

// parseRequest decodes the body of an inbound request. Slack sends
// "application/x-www-form-urlencoded" bodies, but JSON is accepted too.
// Interaction callbacks are identified by their "payload" field,
// which contains a JSON-encoded [slack.InteractionCallback].
func parseRequest(contentType string, body []byte) (request, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "application/json" {
		return parseJSON(body)
	}
	return parseForm(body)
}

func parseForm(body []byte) (request, error) {
	vs, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid form: %w", errBadRequest, err)
	}

	if vs.Has("payload") {
		return parsePayload(vs.Get("payload"))
	}

	return slashCommand{slack.SlashCommand{
		Token:       vs.Get("token"),
		TeamID:      vs.Get("team_id"),
		TeamDomain:  vs.Get("team_domain"),
		ChannelID:   vs.Get("channel_id"),
		ChannelName: vs.Get("channel_name"),
		UserID:      vs.Get("user_id"),
		UserName:    vs.Get("user_name"),
		Command:     vs.Get("command"),
		Text:        vs.Get("text"),
		ResponseURL: vs.Get("response_url"),
		TriggerID:   vs.Get("trigger_id"),
		APIAppID:    vs.Get("api_app_id"),
	}}, nil
}

func parseJSON(body []byte) (request, error) {
	b := jsonBody{}
	if err := json.Unmarshal(body, &b); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %w", errBadRequest, err)
	}

	if b.Payload != "" {
		return parsePayload(b.Payload)
	}

	return slashCommand{slack.SlashCommand{
		Token:       b.Token,
		TeamID:      b.TeamID,
		TeamDomain:  b.TeamDomain,
		ChannelID:   b.ChannelID,
		ChannelName: b.ChannelName,
		UserID:      b.UserID,
		UserName:    b.UserName,
		Command:     b.Command,
		Text:        b.Text,
		ResponseURL: b.ResponseURL,
		TriggerID:   b.TriggerID,
		APIAppID:    b.APIAppID,
	}}, nil
}

func parsePayload(payload string) (request, error) {
	if payload == "" {
		return nil, fmt.Errorf("%w: empty interaction payload", errBadRequest)
	}

	cb := slack.InteractionCallback{}
	if err := json.Unmarshal([]byte(payload), &cb); err != nil {
		return nil, fmt.Errorf("%w: invalid interaction payload: %w", errBadRequest, err)
	}

	return dialogSubmission{cb}, nil
}
