/*
Package resilience provides a circuit breaker guarding the AI provider.

# Overview

Provider outages should fail fast instead of queuing requests behind a dead
upstream. The breaker tracks consecutive failures and short-circuits calls
while the upstream is considered down.

# States

- Closed: normal operation, calls pass through
- Open: upstream considered down, calls fail immediately with ErrOpen
- HalfOpen: cooldown elapsed, a limited number of probe calls allowed

Transitions:

	Closed --[consecutive failures]-> Open --[cooldown]-> HalfOpen
	HalfOpen --[probe successes]-> Closed
	HalfOpen --[any failure]-> Open
*/
package resilience
