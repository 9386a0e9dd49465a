// Package contact parses, validates and delivers contact form submissions.
//
// A submission is either personal or business. Business contacts may name an
// organization; for personal contacts the organization is never required and
// is discarded if sent.
//
// Delivery goes through a [Submitter]. [LogSubmitter] only logs, and
// [WebhookSubmitter] posts the submission as JSON to a configured URL.
package contact
