// Package filesink appends log records to a per-application text file.
//
// # File layout
//
// For application "Orders" writing into folder F:
//
//	F/OrdersLog.txt            current file
//	F/20261016_OrdersLog.txt   previous day, named after its last-modified date
//	F/OrdersErrorLog.txt       records that could not be written to the current file
//
// Each record is
//
//	2026/10/17 14:03:22<TAB>HOST<TAB>message<CRLF>
//	-----...(119 dashes)...-----<CRLF>
//
// The machine column is omitted when no machine identifier is set.
//
// # Rotation
//
// Before appending, the current file is checked. When its last-modified
// date is earlier than today's date it is copied to the dated backup name,
// then deleted, so a file never holds records from two calendar days once a
// newer write arrives. A backup name collision overwrites the older copy.
//
// # Failures
//
// WriteEntry never returns an error and never panics. Any failure while
// rotating or appending diverts the record, with the error text, to the
// error file. If that write fails too the record is dropped.
//
// # Concurrency Safety
//
// The rotate-then-append sequence runs under a mutex keyed by the absolute
// file path. The lock table is process-wide, so separate Sink values that
// target the same file still serialize.
package filesink
