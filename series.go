package finctrl

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/finctrl/date"
)

// Result is the outcome of ensuring the balance of one account on one day.
type Result struct {
	Date      date.Date
	AccountID int64
	Snapshot  Snapshot // valid when Err is nil
	Created   bool     // the snapshot was computed by this call
	Err       error
}

// OK reports whether the balance is known.
func (r Result) OK() bool { return r.Err == nil }

// Series collects the results of an AdvanceSeries call, in processing order.
type Series struct {
	Range   date.Range
	Results []Result
}

// Failures returns the results that could not be resolved.
func (s *Series) Failures() []Result {
	var list []Result
	for _, r := range s.Results {
		if !r.OK() {
			list = append(list, r)
		}
	}
	return list
}

// Created returns the number of snapshots computed.
func (s *Series) Created() int {
	n := 0
	for _, r := range s.Results {
		if r.Created {
			n++
		}
	}
	return n
}

// Err joins the errors of all failures, or returns nil.
func (s *Series) Err() error {
	var errs error
	for _, r := range s.Failures() {
		errs = errors.Join(errs, fmt.Errorf("%s: %w", r.Date, r.Err))
	}
	return errs
}

// EnsureAll runs EnsureBalance on one day for each account in accountIDs, or
// for every account when none is given.
//
// A failure for one account does not stop the others: it is recorded in the
// account's Result. The returned error is only set when the accounts cannot
// be listed.
func (e *Engine) EnsureAll(ctx context.Context, on date.Date, accountIDs ...int64) ([]Result, error) {
	ids, err := e.accountIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	return e.ensureAll(ctx, on, ids), nil
}

func (e *Engine) ensureAll(ctx context.Context, on date.Date, ids []int64) []Result {
	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		s, created, err := e.ensureBalance(ctx, id, on)
		if err != nil {
			e.log.Warn().Err(err).Int64("account", id).Stringer("date", on).Msg("balance not resolved")
		}
		results = append(results, Result{Date: on, AccountID: id, Snapshot: s, Created: created, Err: err})
	}
	return results
}

// AdvanceSeries ensures the balance of the accounts on every day of r, in
// ascending order of days. On each day all accounts are processed before
// moving to the next day, as the balance of a day only depends on the balance
// of the same account the day before.
//
// Like EnsureAll, an unresolved balance is recorded and the series goes on:
// a gap on one day usually makes the following days of that account fail too.
func (e *Engine) AdvanceSeries(ctx context.Context, r date.Range, accountIDs ...int64) (*Series, error) {
	if r.IsOpen() {
		return nil, fmt.Errorf("series %v has no end date", r)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid series: %w", err)
	}
	ids, err := e.accountIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	series := &Series{Range: r}
	for on := range r.Days() {
		if err := ctx.Err(); err != nil {
			return series, err
		}
		series.Results = append(series.Results, e.ensureAll(ctx, on, ids)...)
	}
	e.log.Info().
		Stringer("range", r).
		Int("accounts", len(ids)).
		Int("created", series.Created()).
		Int("failures", len(series.Failures())).
		Msg("balance series advanced")
	return series, nil
}

// accountIDs returns ids, or the ids of all accounts when ids is empty.
func (e *Engine) accountIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) > 0 {
		return ids, nil
	}
	accounts, err := e.store.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list accounts: %w", err)
	}
	ids = make([]int64, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	return ids, nil
}
