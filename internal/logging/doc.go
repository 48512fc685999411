// Package logging provides structured logging for custdesk.
//
// This package wraps a global zap logger. Logging is silent unless a level is
// passed explicitly or CUSTDESK_LOG_LEVEL is set, so one-shot commands print
// only their own output.
//
// # Log Levels
//
//   - Debug: every completed service call (method, url, status, duration)
//   - Info: development server requests, startup
//   - Warn: failed service calls with the underlying cause
//   - Error: startup failures
//
// # Output
//
// Commands log to stdout. The interactive screen logs to custdesk.log in the
// configuration directory:
//
//	if err := logging.InitializeWithOutput(level, logPath); err != nil {
//	    return err
//	}
//	defer logging.Sync()
package logging
