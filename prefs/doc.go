// Package prefs persists user preferences as string key/value pairs.
//
// [FileStore] keeps them in a JSON file and coalesces bursts of writes
// (slider drags) through a rate limiter; [MemStore] keeps them in memory.
// [Preferences] is a typed view that falls back to defaults when a stored
// value is missing or malformed.
package prefs
