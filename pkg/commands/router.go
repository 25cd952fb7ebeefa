// Package commands implements the "/faq" slash command: it parses the
// command's text, and dispatches it to the "list", "show", "add", or
// "help" behaviors. Any other first word is treated as a tag to show.
package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tzrikka/slackfaq/pkg/faq"
)

const (
	HelpTag = "help"

	msgQueryFailed  = "Sorry, query failed"
	msgEmptyList    = "There are no FAQs yet. Type */faq add* to create one"
	msgDialogOpened = "Opening the FAQ form..."
	msgDialogFailed = "Sorry, couldn't open the FAQ form"
)

// Store is the subset of the FAQ entry store that the router reads from.
type Store interface {
	ListAll(ctx context.Context) ([]faq.Summary, error)
	Current(ctx context.Context, tag string) (faq.Entry, bool, error)
}

// DialogOpener opens the "Create a new FAQ" dialog in Slack.
type DialogOpener interface {
	OpenFAQDialog(ctx context.Context, triggerID, title string) error
}

// Request contains the slash command's fields that the router uses.
type Request struct {
	Text      string
	TriggerID string
	UserName  string
}

// HandlerFunc executes a single verb. The args
// are the words that follow the verb in the text.
type HandlerFunc func(ctx context.Context, r Request, args ...string) Response

// Router dispatches slash commands to verb handlers.
type Router struct {
	store  Store
	dialog DialogOpener
	verbs  map[string]HandlerFunc
}

func NewRouter(s Store, d DialogOpener) *Router {
	r := &Router{store: s, dialog: d}
	r.verbs = map[string]HandlerFunc{
		"list": r.list,
		"show": r.show,
		"add":  r.add,
	}
	return r
}

// Verbs returns a sorted list of all the supported verbs.
func (r *Router) Verbs() []string {
	verbs := make([]string, 0, len(r.verbs)+1)
	for v := range r.verbs {
		verbs = append(verbs, v)
	}
	verbs = append(verbs, HelpTag)
	slices.Sort(verbs)
	return verbs
}

// Handle splits the command's text on whitespace, and executes the
// verb that the first word selects. "help", an empty text, and any
// unrecognized first word are all shown as tags (the rest is ignored).
func (r *Router) Handle(ctx context.Context, req Request) Response {
	args := strings.Fields(req.Text)
	if len(args) == 0 {
		args = []string{HelpTag}
	}

	l := zerolog.Ctx(ctx).With().Str("user", req.UserName).Logger()
	if h, ok := r.verbs[args[0]]; ok {
		l.Debug().Str("verb", args[0]).Int("args", len(args)-1).Msg("executing slash command")
		return h(ctx, req, args[1:]...)
	}

	l.Debug().Str("verb", "show").Str("tag", args[0]).Msg("executing slash command")
	return r.show(ctx, req, args[0])
}

func (r *Router) list(ctx context.Context, _ Request, _ ...string) Response {
	ss, err := r.store.ListAll(ctx)
	if err != nil {
		return NewResponse(msgQueryFailed)
	}
	if len(ss) == 0 {
		return NewResponse(msgEmptyList)
	}

	// Summaries are sorted by version in descending order,
	// so the first one of each tag has its current title.
	var sb strings.Builder
	seen := make(map[string]bool, len(ss))
	for _, s := range ss {
		if seen[s.Tag] {
			continue
		}
		seen[s.Tag] = true
		fmt.Fprintf(&sb, "*%s:* %s\n", s.Tag, s.Title)
	}
	return NewResponse(sb.String())
}

func (r *Router) show(ctx context.Context, _ Request, args ...string) Response {
	tag := HelpTag
	if len(args) > 0 {
		tag = args[0]
	}

	e, found, err := r.store.Current(ctx, tag)
	if err != nil {
		return NewResponse(msgQueryFailed)
	}
	if !found {
		return NewResponse(notFound(tag))
	}

	return NewResponse(e.Title + "\n" + e.Content)
}

func notFound(tag string) string {
	return fmt.Sprintf("Sorry, I didn't find a FAQ with tag *%s*\nType */faq list* for all available FAQs", tag)
}

// add opens the dialog for creating a new FAQ, or a new version of an
// existing one. Words after the verb pre-fill the dialog's title.
func (r *Router) add(ctx context.Context, req Request, args ...string) Response {
	err := r.dialog.OpenFAQDialog(ctx, req.TriggerID, strings.Join(args, " "))
	if err == nil {
		return NewResponse(msgDialogOpened)
	}

	// Already logged by the dialog opener.
	var te *faq.TransportError
	if errors.As(err, &te) && te.SlackError != "" {
		return NewResponse(fmt.Sprintf("Sorry, Slack refused to open the FAQ form: `%s`", te.SlackError))
	}
	return NewResponse(msgDialogFailed)
}
