// Package ratelimit enforces the Places API politeness contract: a minimum
// spacing between consecutive outbound calls and a hard per-run ceiling on
// the total number of calls. The ceiling fails closed with ErrQuotaExceeded
// and is never retried.
package ratelimit
