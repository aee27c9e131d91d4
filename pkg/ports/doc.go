/*
Package ports defines the driven-side interfaces of the sweep engine.

Adapters (process launcher, file/redis/memory stores) implement these
interfaces so the engine stays decoupled from I/O concerns, following
Hexagonal Architecture principles.
*/
package ports
