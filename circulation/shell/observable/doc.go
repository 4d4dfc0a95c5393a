// Package observable provides wrapper components for instrumenting command and query handlers
// with metrics, tracing and logging while keeping the business logic of the handlers pure.
//
// The wrappers are applied externally at wiring time:
//
//	coreHandler, err := startloan.NewCommandHandler(store, users, books, policy)
//	observableHandler, err := observable.NewCommandWrapper(
//		coreHandler,
//		observable.WithCommandMetrics[startloan.Command](metricsCollector),
//		observable.WithCommandTracing[startloan.Command](tracingCollector),
//		observable.WithCommandContextualLogging[startloan.Command](contextualLogger),
//	)
//
// Business rejections (not found, invalid argument, conflict, invalid state) are recorded
// with status "rejected" and logged at warn level; infrastructure failures are errors.
package observable
