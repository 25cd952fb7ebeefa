package http

import (
	"net/url"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantKind    string
		wantToken   string
		wantErr     bool
	}{
		{
			name:        "form_slash_command",
			contentType: "application/x-www-form-urlencoded",
			body:        url.Values{"token": {"abc"}, "text": {"show vpn"}, "trigger_id": {"t1"}}.Encode(),
			wantKind:    "slash_command",
			wantToken:   "abc",
		},
		{
			name:        "form_interaction",
			contentType: "application/x-www-form-urlencoded",
			body:        url.Values{"payload": {`{"type":"dialog_submission","token":"abc"}`}}.Encode(),
			wantKind:    "interaction",
			wantToken:   "abc",
		},
		{
			name:        "json_slash_command",
			contentType: "application/json",
			body:        `{"token":"abc","text":"list","trigger_id":"t1"}`,
			wantKind:    "slash_command",
			wantToken:   "abc",
		},
		{
			name:        "json_interaction",
			contentType: "application/json; charset=utf-8",
			body:        `{"payload":"{\"type\":\"dialog_submission\",\"token\":\"abc\"}"}`,
			wantKind:    "interaction",
			wantToken:   "abc",
		},
		{
			name:        "missing_content_type",
			body:        "token=abc&text=list",
			wantKind:    "slash_command",
			wantToken:   "abc",
		},
		{
			name:        "empty_form_payload",
			contentType: "application/x-www-form-urlencoded",
			body:        "payload=",
			wantErr:     true,
		},
		{
			name:        "invalid_json",
			contentType: "application/json",
			body:        `{"token":`,
			wantErr:     true,
		},
		{
			name:        "invalid_form",
			contentType: "application/x-www-form-urlencoded",
			body:        "token=%zz",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRequest(tt.contentType, []byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, errBadRequest)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, got.kind())
			assert.Equal(t, tt.wantToken, got.token())
		})
	}
}

func TestParseRequestFields(t *testing.T) {
	form := url.Values{
		"token":        {"abc"},
		"text":         {"add How to connect"},
		"trigger_id":   {"t1"},
		"user_name":    {"alice"},
		"channel_name": {"general"},
	}
	got, err := parseRequest("application/x-www-form-urlencoded", []byte(form.Encode()))
	require.NoError(t, err)

	cmd, ok := got.(slashCommand)
	require.True(t, ok)
	assert.Equal(t, "add How to connect", cmd.Text)
	assert.Equal(t, "t1", cmd.TriggerID)
	assert.Equal(t, "alice", cmd.UserName)
	assert.Equal(t, "general", cmd.ChannelName)

	payload := `{"type":"dialog_submission","token":"abc","callback_id":"create-faq",` +
		`"submission":{"tag":"vpn","title":"VPN access","content":"Use the portal"},` +
		`"user":{"id":"U1","name":"alice"},"channel":{"id":"C1","name":"general"}}`
	got, err = parseRequest("application/x-www-form-urlencoded", []byte(url.Values{"payload": {payload}}.Encode()))
	require.NoError(t, err)

	sub, ok := got.(dialogSubmission)
	require.True(t, ok)
	assert.Equal(t, slack.InteractionTypeDialogSubmission, sub.Type)
	assert.Equal(t, "vpn", sub.Submission["tag"])
	assert.Equal(t, "alice", sub.User.Name)
	assert.Equal(t, "general", sub.Channel.Name)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 400, statusCode(errBadRequest))
	assert.Equal(t, 413, statusCode(errTooLarge))
	assert.Equal(t, 500, statusCode(assert.AnError))
}

func TestSecretsMerge(t *testing.T) {
	s := secrets{verificationToken: "from-flag"}.merge(map[string]string{
		"verification_token": "from-thrippy",
		"bot_token":          "xoxb-thrippy",
	})

	assert.Equal(t, secrets{verificationToken: "from-flag", botToken: "xoxb-thrippy"}, s)
}
