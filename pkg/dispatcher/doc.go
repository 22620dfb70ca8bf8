// Package dispatcher fans one log call out to the structured logger, the
// operating-system event log and a rotating text file.
//
// A Dispatcher is built once per application from Options:
//
//	d, err := dispatcher.New(dispatcher.Options{
//	    ApplicationName:     "Orders",
//	    MinimumLevel:        dispatcher.Information,
//	    FileLogging:         true,
//	    RedactSensitiveData: true,
//	    CallerIdentity:      "orders.Checkout",
//	})
//	d.LogInfo("order placed")
//
// Each call redacts the message when enabled, appends "[LEVEL] message" to
// the log file regardless of MinimumLevel, then hands
// "{caller}: {message}" to the structured logger, which filters by
// MinimumLevel before writing to console and event log. The two writes are
// independent: a failure or panic in one never prevents the other and never
// reaches the caller.
//
// Construction reconciles the event source once. When the source is bound
// to another log or cannot be created, the dispatcher keeps working without
// the event-log output and the reason is written to the advisory file.
package dispatcher
