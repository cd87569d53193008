// Package bootstrap drives the process lifecycle: it validates the typed
// configuration, initializes logging, starts registered components in order,
// runs hooks, blocks until a shutdown signal and stops everything in reverse.
//
//	app, err := bootstrap.NewApp(&cfg)
//	_ = app.RegisterComponent(bridge)
//	app.OnReady(func(ctx context.Context) error { ... })
//	err = app.Run(ctx)
package bootstrap
