/*
Package ai talks to the language model provider and shapes its output into
the segment domain.

# Overview

The Gateway is the only entry point for AI operations. Every call is
cache-first: the operation name and exact input are hashed into a cache key,
and a fresh cached result short-circuits the provider entirely. Provider
calls carry a deadline and run through a circuit breaker; there are no
application-level retries beyond the transport's own.

# Errors

Failures are classified into a small taxonomy (ErrNotConfigured, provider,
malformed, truncated, timeout) so callers can surface a stable message per
kind. Classification happens here; callers never inspect transport errors.

# Credentials

Credentials are read per call from a Source. There is no ambient global key;
a gateway without a configured source fails with ErrNotConfigured.
*/
package ai
