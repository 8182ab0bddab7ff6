// Package cache provides the content-addressed AI result cache.
//
// Entries are keyed by operation kind plus a 64-bit content hash of the input
// ("segmentize:<hash>"). An entry is valid while its age is under the TTL;
// expired entries are evicted on read and reported as a miss. A capacity
// bound evicts least-recently-used entries so the cache cannot grow without
// limit.
//
// Entries write through to the key-value store (one record per cache key) and
// are promoted back into memory on first read after a restart. Storage I/O
// failures are logged and treated as a miss; they never reach the caller.
package cache
