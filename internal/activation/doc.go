// Package activation decides which profile occupies the global vkBasalt.conf
// and switches it. The active profile is never cached: every query re-reads
// the global config and the profiles directory, because either may be
// changed by other tools at any time.
//
// The engine does no locking. Activate and Reset remove the global config
// before writing the new one, so callers must serialize them against
// concurrent readers of the same path.
package activation
