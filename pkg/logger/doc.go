// Package logger provides the structured logging interface used across
// igfollowers.
//
// It wraps zerolog. Console output always goes to stderr because stdout is
// reserved for the single JSON envelope a method prints.
//
//	log, err := logger.New(&cfg.Logging)
//	log.WithField("method", "method2").Info("Fetching followers")
//
// Tests use NewNopLogger or NewTestLogger, the latter capturing every
// message for assertions.
package logger
