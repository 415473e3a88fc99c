// Package service owns one order book and is the only place commands
// enter it.
//
// Every command is stamped with a sequence number, applied to the book on
// the caller's goroutine, and followed by a refresh of the published
// statistics that the metrics collector reads from elsewhere.
package service
