// Package httpserver runs an http.Handler with graceful, context driven
// shutdown.
//
// Run binds the listener first so that address errors surface immediately as
// ErrStart, then serves until the context is cancelled or Shutdown is called.
// Shutdown is bounded by Config.ShutdownTimeout and runs registered stop hooks
// once. Signal handling is left to the caller, typically via
// signal.NotifyContext in main.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// HealthCheckHandler provides liveness and readiness probes.
package httpserver
