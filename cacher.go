package dnslink

// Cacher is the resolution cache consulted and written by the Engine.
// Implementations must be safe for concurrent use from multiple
// request-handling goroutines; all operations are single-key.
type Cacher interface {
	// Get returns the cached value for fqdn and whether a fresh entry
	// exists. It never triggers network activity. Entries past their TTL
	// read as missing even if not yet physically removed.
	Get(fqdn string) (Value, bool)

	// Set inserts or overwrites the entry for fqdn, resetting its age.
	// It may evict the least-recently-used entry to stay within capacity.
	Set(fqdn string, value Value)

	// Clear removes all entries unconditionally.
	Clear()
}
