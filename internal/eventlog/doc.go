// Package eventlog binds an application to an operating-system event log.
//
// # Stores
//
// A Store exposes the four event-log operations the rest of logfan relies
// on: SourceExists, CreateEventSource, LogNameFromSourceName and WriteEntry.
//
//   - Windows: RegistryStore registers sources under
//     HKLM\SYSTEM\CurrentControlSet\Services\EventLog\<log>\<source> and
//     writes through the Windows event log API.
//   - Linux and other unix systems: JournalStore keeps one file per source
//     in a registry directory (default /etc/logfan/sources) holding the log
//     name, and writes entries to the systemd journal with the source as
//     SYSLOG_IDENTIFIER.
//   - MemoryStore keeps everything in memory and is used by tests.
//
// Creating a source needs elevated privileges on both platforms. Callers see
// that as an error matching fs.ErrPermission.
//
// # Reconciliation
//
// Reconciler.EnsureSource makes sure a source exists and is bound to the
// expected log before first use. It never returns an error. The outcome is a
// State; advisories for the operator are written through the file sink
// because the structured logger may not exist yet.
//
//	Unregistered        -> create, optional test entry      -> StateCreated
//	bound to same log   -> nothing                          -> StateMatching
//	bound to other log  -> warn, never rebind               -> StateMismatched
//	privilege error     -> fixed advisory                   -> StatePermissionDenied
//	any other error     -> error text                       -> StateFailed
//
// Only StateCreated and StateMatching leave the event-log sink usable.
//
// Viewing journal entries:
//
//	journalctl -t Orders
//	journalctl -t Orders LOGFAN_LOG_NAME=Application
package eventlog
