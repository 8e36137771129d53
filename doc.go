// Package finctrl keeps a personal ledger of accounts held in several
// currencies, and derives their daily balances.
//
// The ledger is made of:
//   - Currencies, identified by a unique code and displayed with a sign.
//   - Accounts, each one held in a single currency.
//   - Snapshots: the balance of an account as of a calendar day. Snapshots are
//     sparse; a missing day is computed on demand.
//   - Transactions: dated debits, credits and transfer legs of an account.
//
// The Engine derives missing snapshots by rolling forward: the balance of a
// day is the balance of the previous day plus the transactions recorded on
// that previous day. It only ever steps one day at a time; AdvanceSeries
// walks a range of days to backfill a span of missing snapshots.
//
// Storage is abstracted by the Store interface. MemStore keeps everything in
// memory, the sqlite package persists a ledger in a single database file.
//
// This package serves as the foundational logic for the `finctrl`
// command-line tool.
package finctrl
