package circulation

import (
	"github.com/AntonStoeckl/library-loans-go/circulation/core"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/command/renewloan"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/command/rescheduleloan"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/command/returnloan"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/command/setloanstatus"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/command/startloan"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/query/getloan"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/query/listloans"
	"github.com/AntonStoeckl/library-loans-go/circulation/features/query/loansummary"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell/observable"
)

func (e *Engine) wireCommandHandlers(loanStore shell.LoanStore, users shell.UserDirectory, books shell.BookDirectory) error {
	var err error

	if e.startLoan, err = observeCommand[startloan.Command](e, startloan.NewCommandHandler(
		loanStore, users, books, e.datePolicy,
		startloan.WithStoreTimeout(e.storeTimeout),
		startloan.WithRetryOptions(e.retryOptions...),
	)); err != nil {
		return err
	}

	if e.returnLoan, err = observeCommand[returnloan.Command](e, returnloan.NewCommandHandler(
		loanStore, e.datePolicy,
		returnloan.WithStoreTimeout(e.storeTimeout),
		returnloan.WithRetryOptions(e.retryOptions...),
	)); err != nil {
		return err
	}

	if e.renewLoan, err = observeCommand[renewloan.Command](e, renewloan.NewCommandHandler(
		loanStore,
		renewloan.WithStoreTimeout(e.storeTimeout),
		renewloan.WithRetryOptions(e.retryOptions...),
	)); err != nil {
		return err
	}

	if e.rescheduleLoan, err = observeCommand[rescheduleloan.Command](e, rescheduleloan.NewCommandHandler(
		loanStore, e.datePolicy,
		rescheduleloan.WithStoreTimeout(e.storeTimeout),
		rescheduleloan.WithRetryOptions(e.retryOptions...),
	)); err != nil {
		return err
	}

	e.setLoanStatus, err = observeCommand[setloanstatus.Command](e, setloanstatus.NewCommandHandler(
		loanStore, e.datePolicy,
		setloanstatus.WithStoreTimeout(e.storeTimeout),
		setloanstatus.WithRetryOptions(e.retryOptions...),
	))

	return err
}

func (e *Engine) wireQueryHandlers(loanStore shell.LoanStore) error {
	var err error

	if e.getLoan, err = observeQuery[getloan.Query, core.LoanView](e,
		getloan.NewQueryHandler(loanStore, e.viewer, e.datePolicy, e.storeTimeout),
	); err != nil {
		return err
	}

	if e.listLoans, err = observeQuery[listloans.Query, listloans.LoanList](e,
		listloans.NewQueryHandler(loanStore, e.viewer, e.datePolicy, e.storeTimeout),
	); err != nil {
		return err
	}

	e.loanSummary, err = observeQuery[loansummary.Query, core.Summary](e,
		loansummary.NewQueryHandler(loanStore, e.datePolicy, e.storeTimeout),
	)

	return err
}

func observeCommand[C shell.Command](e *Engine, handler shell.CommandHandler[C]) (shell.CommandHandler[C], error) {
	opts := []observable.CommandOption[C]{
		observable.WithCommandMetrics[C](e.metricsCollector),
		observable.WithCommandTracing[C](e.tracingCollector),
	}

	if e.contextualLogger != nil {
		opts = append(opts, observable.WithCommandContextualLogging[C](e.contextualLogger))
	} else if e.logger != nil {
		opts = append(opts, observable.WithCommandLogging[C](e.logger))
	}

	wrapper, err := observable.NewCommandWrapper[C](handler, opts...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

func observeQuery[Q shell.Query, R any](e *Engine, handler shell.QueryHandler[Q, R]) (shell.QueryHandler[Q, R], error) {
	opts := []observable.QueryOption[Q, R]{
		observable.WithQueryMetrics[Q, R](e.metricsCollector),
		observable.WithQueryTracing[Q, R](e.tracingCollector),
	}

	if e.contextualLogger != nil {
		opts = append(opts, observable.WithQueryContextualLogging[Q, R](e.contextualLogger))
	} else if e.logger != nil {
		opts = append(opts, observable.WithQueryLogging[Q, R](e.logger))
	}

	wrapper, err := observable.NewQueryWrapper[Q, R](handler, opts...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}
