// Package notifier runs the daily subscription-expiry check.
//
// A Checker wakes once per day at a fixed wall-clock time, loads the current
// subscription snapshot, and emails the operator for every record crossing
// one of two thresholds: exactly 45 days before the end date (warning) and
// the end date itself (expiry notice). Matching is exact-day: a record is
// notified on the single day it crosses each threshold, and days the checker
// was not running are not backfilled.
//
// Sends are independent; one failing email is logged and the scan moves on.
package notifier
