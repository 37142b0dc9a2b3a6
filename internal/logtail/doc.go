// Package logtail reads the last lines of a log file.
//
// # Overview
//
// The UI shows a tail of the application's own log in an overlay. Read
// extracts the last N lines from the file without loading the whole file
// into memory, so it stays cheap even after the log has grown for weeks.
//
// # Ring Buffer Algorithm
//
// Read scans the file once and keeps a circular buffer of size maxLines:
//
//	1. Allocate ring buffer of size maxLines
//	2. For each line in file:
//	   - Store line at current index
//	   - Increment index (wrapping at maxLines)
//	   - Track total lines seen
//	3. If total < maxLines, return the first entries from the buffer
//	4. Otherwise return the buffer starting from the current index
//
// Memory usage is O(maxLines x average line length) regardless of file size.
//
// # Error Handling
//
// Read returns nil, nil for a missing file so a fresh installation with no
// log yet degrades gracefully. Other errors are returned wrapped.
//
// Parsing and coloring of the JSON records is deliberately left to the UI
// layer; this package only hands back raw lines.
package logtail
