// Package app wires the bank metrics API together and runs it.
//
// New loads the dataset named in the configuration (or the built-in one),
// initializes OpenTelemetry, builds the services and mounts the handlers on
// a chi router behind the middleware chain. Run serves until the context is
// cancelled or SIGINT/SIGTERM arrives and then shuts down gracefully,
// flushing telemetry on the way out.
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// Initialization errors are returned; the package never calls os.Exit.
package app
