// Package schedule computes next-fire times for recurring jobs.
//
// A Schedule is a pure function from "now" to the next firing instant, which
// keeps the waiting loop trivial to test: callers decide how to wait, the
// schedule only does calendar math.
package schedule
