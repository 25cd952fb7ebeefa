// Package faq defines the FAQ entry model, which is shared by the
// entry store, the slash-command router, and the dialog intake, and
// the errors that flow between them and the HTTP server.
package faq
