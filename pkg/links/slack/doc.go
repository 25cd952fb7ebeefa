// Package slack implements the parts of Slack's [Web API] and
// [request verification] that the FAQ slash command needs: opening
// the "Create a new FAQ" [dialog], and authenticating inbound requests.
//
// [Web API]: https://docs.slack.dev/apis/web-api
// [request verification]: https://docs.slack.dev/authentication/verifying-requests-from-slack
// [dialog]: https://docs.slack.dev/legacy/legacy-dialogs
package slack
