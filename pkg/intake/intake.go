// Package intake ingests submissions of the "Create a new FAQ" dialog.
// Each valid submission is saved as a new immutable entry: version 1 for
// a new tag, or the tag's latest version + 1 for a re-submission.
package intake

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	"github.com/tzrikka/slackfaq/pkg/faq"
	slacklink "github.com/tzrikka/slackfaq/pkg/links/slack"
)

// Store is the subset of the FAQ entry store that the intake uses.
type Store interface {
	FindByTag(ctx context.Context, tag string) ([]faq.Entry, error)
	Save(ctx context.Context, e *faq.Entry) error
}

type Intake struct {
	store Store
	now   func() time.Time
}

func New(s Store) *Intake {
	return &Intake{store: s, now: time.Now}
}

// Submit validates and saves a dialog submission. A nil result and a nil
// error mean success. A non-nil result contains field-level errors, which
// Slack displays inline in the still-open dialog, without losing the user's
// input. The only possible error is [faq.ErrMethodNotAllowed], when the
// callback isn't a submission of the dialog that this app opens.
func (i *Intake) Submit(ctx context.Context, cb slack.InteractionCallback) (*slack.DialogInputValidationErrors, error) {
	l := zerolog.Ctx(ctx).With().Str("interaction_type", string(cb.Type)).Str("callback_id", cb.CallbackID).Logger()

	if cb.Type != slack.InteractionTypeDialogSubmission {
		l.Warn().Msg("unexpected interaction type")
		return nil, faq.ErrMethodNotAllowed
	}
	if cb.CallbackID != "" && cb.CallbackID != slacklink.CallbackID {
		l.Warn().Msg("unexpected dialog callback ID")
		return nil, faq.ErrMethodNotAllowed
	}

	e := &faq.Entry{
		Tag:     strings.TrimSpace(cb.Submission[slacklink.FieldTag]),
		Title:   strings.TrimSpace(cb.Submission[slacklink.FieldTitle]),
		Content: cb.Submission[slacklink.FieldContent],
		Author:  cb.User.Name,
		Channel: cb.Channel.Name,
	}
	l = l.With().Str("tag", e.Tag).Str("author", e.Author).Str("channel", e.Channel).Logger()

	if errs := validate(e); errs != nil {
		l.Debug().Any("errors", errs.Errors).Msg("invalid dialog submission")
		return errs, nil
	}

	existing, err := i.store.FindByTag(ctx, e.Tag)
	if err != nil {
		return fieldError(slacklink.FieldContent, "Sorry, couldn't check for previous versions of this FAQ, please try again"), nil
	}

	e.Version = faq.NextVersion(existing)
	e.Updated = i.now().UTC()

	if err := i.store.Save(ctx, e); err != nil {
		l.Err(err).Int("version", e.Version).Msg("failed to save FAQ entry")
		if errors.Is(err, faq.ErrVersionTaken) {
			return fieldError(slacklink.FieldContent, "Someone else just saved a new version of this FAQ, please submit again"), nil
		}
		return fieldError(slacklink.FieldContent, "Sorry, couldn't save this FAQ: "+err.Error()), nil
	}

	l.Info().Int("version", e.Version).Msg("accepted dialog submission")
	return nil, nil
}

// validate checks what the dialog itself can't: the command
// router splits text on whitespace, so tags can't contain any.
func validate(e *faq.Entry) *slack.DialogInputValidationErrors {
	switch {
	case e.Tag == "":
		return fieldError(slacklink.FieldTag, "Please enter a tag")
	case len(strings.Fields(e.Tag)) > 1:
		return fieldError(slacklink.FieldTag, "Tags must be a single word")
	case e.Title == "":
		return fieldError(slacklink.FieldTitle, "Please enter a title")
	default:
		return nil
	}
}

func fieldError(name, msg string) *slack.DialogInputValidationErrors {
	return &slack.DialogInputValidationErrors{
		Errors: []slack.DialogInputValidationError{{Name: name, Error: msg}},
	}
}
