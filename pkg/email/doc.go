// Package email provides a provider-agnostic interface for sending
// plain-text notification emails.
//
// The package is built around the Sender interface so transports can be
// swapped without touching callers:
//   - SMTPSender delivers through a classic SMTP relay (STARTTLS + PLAIN auth)
//   - PostmarkSender delivers through Postmark's transactional API
//   - DevSender saves messages to disk for local development
//
// All implementations validate the message before sending and report delivery
// failures as ErrSendFailed so callers can treat any transport uniformly.
package email
