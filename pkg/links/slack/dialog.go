package slack

import (
	"github.com/slack-go/slack"
)

const (
	// CallbackID identifies submissions of the dialog created by [NewFAQDialog].
	CallbackID = "create-faq"

	// Names of the dialog's input elements, as
	// they appear in the submission's payload.
	FieldTitle   = "title"
	FieldTag     = "tag"
	FieldContent = "content"

	maxTitleLength   = 150
	maxTagLength     = 150
	maxContentLength = 3000
)

// NewFAQDialog returns the specification of the "Create a new FAQ" dialog.
// The title element is pre-filled with the given text, which may be empty.
func NewFAQDialog(title string) slack.Dialog {
	titleInput := slack.NewTextInput(FieldTitle, "Title", title)
	titleInput.Hint = "One-line description of FAQ contents"
	titleInput.MaxLength = maxTitleLength

	tagInput := slack.NewTextInput(FieldTag, "Tag", "")
	tagInput.Hint = "Index word for this FAQ"
	tagInput.MaxLength = maxTagLength

	contentInput := slack.NewTextAreaInput(FieldContent, "Content", "")
	contentInput.Hint = "Write the content of the FAQ here.  You can use Slack formatting"
	contentInput.MaxLength = maxContentLength

	return slack.Dialog{
		CallbackID:  CallbackID,
		Title:       "Create a new FAQ",
		SubmitLabel: "Submit",
		Elements:    []slack.DialogElement{titleInput, tagInput, contentInput},
	}
}
