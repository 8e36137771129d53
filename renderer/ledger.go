package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/finctrl"
	md "github.com/nao1215/markdown"
)

func id(v int64) string { return strconv.FormatInt(v, 10) }

// CurrenciesMarkdown lists currencies.
func CurrenciesMarkdown(currencies []finctrl.Currency) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Currencies")
	if len(currencies) == 0 {
		doc.PlainText("No currencies.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"ID", "Code", "Name", "Sign"},
	}
	for _, c := range currencies {
		table.Rows = append(table.Rows, []string{id(c.ID), c.Code, c.Name, c.Sign})
	}
	doc.Table(table)
	return doc.String()
}

// AccountsMarkdown lists accounts with their currency.
func AccountsMarkdown(accounts []finctrl.Account, c *Catalog) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Accounts")
	if len(accounts) == 0 {
		doc.PlainText("No accounts.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignLeft},
		Header:    []string{"ID", "Name", "Currency"},
	}
	for _, a := range accounts {
		table.Rows = append(table.Rows, []string{id(a.ID), a.Name, c.Currency(a.ID).Code})
	}
	doc.Table(table)
	return doc.String()
}

// BalancesMarkdown lists the balance snapshots of an account.
func BalancesMarkdown(account finctrl.Account, snapshots []finctrl.Snapshot, c *Catalog) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Balances of %s", account.Name))
	if len(snapshots) == 0 {
		doc.PlainText("No balances.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignRight},
		Header:    []string{"ID", "Date", "Balance"},
	}
	for _, s := range snapshots {
		table.Rows = append(table.Rows, []string{id(s.ID), s.Date.String(), c.Amount(s.AccountID, s.Balance)})
	}
	doc.Table(table)
	return doc.String()
}

// signed formats the amount of a transaction with the sign of its effect on the balance.
func signed(tx finctrl.Transaction, c *Catalog) string {
	if tx.Kind.Outflow() {
		return c.ExactAmount(tx.AccountID, tx.Amount.Neg())
	}
	return c.ExactAmount(tx.AccountID, tx.Amount)
}

// transactionsTable renders transactions in a table, in the given order.
func transactionsTable(txs []finctrl.Transaction, c *Catalog) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"ID", "Timestamp", "Account", "Kind", "Amount", "Note"},
	}
	for _, tx := range txs {
		table.Rows = append(table.Rows, []string{
			id(tx.ID),
			tx.Timestamp.Format(finctrl.TimestampFormat),
			c.Account(tx.AccountID),
			tx.Kind.String(),
			signed(tx, c),
			tx.Note,
		})
	}
	return table
}

// TransactionsMarkdown lists transactions under a title.
func TransactionsMarkdown(title string, txs []finctrl.Transaction, c *Catalog) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)
	if len(txs) == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}
	doc.Table(transactionsTable(txs, c))
	return doc.String()
}

// SeriesMarkdown reports the outcome of a balance series update, one row per
// account and day. With failuresOnly, the rows are limited to the failures
// while the summary still counts the whole series.
func SeriesMarkdown(series *finctrl.Series, c *Catalog, failuresOnly bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Balances %s", series.Range))
	failures := series.Failures()
	doc.PlainText(fmt.Sprintf("%d computed, %d failed.", series.Created(), len(failures)))
	rows := series.Results
	if failuresOnly {
		rows = failures
	}
	if len(rows) == 0 {
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"Date", "Account", "Balance", "Status"},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, resultRow(r, c))
	}
	doc.Table(table)
	return doc.String()
}

// ResultsMarkdown reports the balance of several accounts on a day.
func ResultsMarkdown(results []finctrl.Result, c *Catalog) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	if len(results) == 0 {
		doc.PlainText("No accounts.")
		return doc.String()
	}
	doc.H1(fmt.Sprintf("Balances on %s", results[0].Date))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"Date", "Account", "Balance", "Status"},
	}
	for _, r := range results {
		table.Rows = append(table.Rows, resultRow(r, c))
	}
	doc.Table(table)
	return doc.String()
}

func resultRow(r finctrl.Result, c *Catalog) []string {
	switch {
	case !r.OK():
		return []string{r.Date.String(), c.Account(r.AccountID), "", r.Err.Error()}
	case r.Created:
		return []string{r.Date.String(), c.Account(r.AccountID), c.Amount(r.AccountID, r.Snapshot.Balance), "computed"}
	default:
		return []string{r.Date.String(), c.Account(r.AccountID), c.Amount(r.AccountID, r.Snapshot.Balance), "recorded"}
	}
}
