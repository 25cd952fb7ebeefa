package commands

import (
	"github.com/slack-go/slack"
)

// Response is the JSON body of a synchronous reply to a slash command.
// Unlike [slack.Msg], its attachments list is always serialized.
type Response struct {
	ResponseType string             `json:"response_type"`
	Text         string             `json:"text"`
	Attachments  []slack.Attachment `json:"attachments"`
}

// NewResponse returns a simple text message
// that only the invoking user can see.
func NewResponse(text string) Response {
	return Response{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         text,
		Attachments:  []slack.Attachment{},
	}
}
