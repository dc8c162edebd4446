/*
Package observability turns visualizer lifecycle events into logs and Prometheus metrics.

Both helpers return domain.LifecycleHooks; combine them with Chain and pass the result to
arbor.WithLifecycleHooks.
*/
package observability
