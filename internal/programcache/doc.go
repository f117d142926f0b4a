// Package programcache provides a thread-safe, in-memory cache of compiled
// programs keyed by a fingerprint of the spell they were compiled from.
//
// Programs are immutable once compiled, so a cached program can be cast any
// number of times, concurrently, without copying. The cache is bounded and
// evicts the least recently used program. Concurrent misses for the same
// fingerprint share a single compilation.
package programcache
