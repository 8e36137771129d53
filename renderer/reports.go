package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/finctrl"
	md "github.com/nao1215/markdown"
)

// totalsTable renders one row per currency.
func totalsTable(header string, amounts []finctrl.CurrencyAmount) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Currency", header},
	}
	for _, a := range amounts {
		table.Rows = append(table.Rows, []string{a.Currency.Code, a.String()})
	}
	return table
}

// MonthlyMarkdown renders the income and expenses of a month.
func MonthlyMarkdown(r *finctrl.MonthlyReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Monthly Report %s", r.Range.From.Format("January 2006")))
	if len(r.Credit) == 0 && len(r.Debit) == 0 {
		doc.PlainText("No income nor expenses.")
		return doc.String()
	}
	if len(r.Credit) > 0 {
		doc.H2("Income")
		doc.Table(totalsTable("Credit", r.Credit))
	}
	if len(r.Debit) > 0 {
		doc.H2("Expenses")
		doc.Table(totalsTable("Debit", r.Debit))
	}
	return doc.String()
}

// BalanceReportMarkdown renders the total balances of a day.
func BalanceReportMarkdown(r *finctrl.BalanceReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Balance Report %s", r.Date))
	if len(r.Totals) == 0 {
		doc.PlainText(fmt.Sprintf("No balances recorded on %s.", r.Date))
		return doc.String()
	}
	doc.Table(totalsTable("Balance", r.Totals))
	return doc.String()
}

// AverageOverviewMarkdown renders the monthly averages, optionally followed
// by the transactions they are computed from.
func AverageOverviewMarkdown(o *finctrl.AverageOverview, c *Catalog, withTransactions bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Average Overview %s to %s", o.Range.From.Format("January 2006"), o.Range.To.Format("January 2006")))
	doc.PlainText(fmt.Sprintf("%d months, %d transactions.", o.Months, len(o.Transactions)))

	averages := func(title, header string, list []finctrl.CurrencyAverage) {
		if len(list) == 0 {
			return
		}
		doc.H2(title)
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Currency", header, "Monthly Average"},
		}
		for _, a := range list {
			table.Rows = append(table.Rows, []string{a.Currency.Code, a.String(), a.Currency.Format(a.Average)})
		}
		doc.Table(table)
	}
	averages("Income", "Credit", o.Credit)
	averages("Expenses", "Debit", o.Debit)

	if withTransactions && len(o.Transactions) > 0 {
		doc.H2("Transactions")
		doc.Table(transactionsTable(o.Transactions, c))
	}
	return doc.String()
}

// AccountReportMarkdown renders the movements of an account and checks them
// against the recorded balances.
func AccountReportMarkdown(r *finctrl.AccountReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Account Report %s", r.Account.Name))

	known := func(ok bool, v string) string {
		if !ok {
			return "unknown"
		}
		return v
	}
	cur := r.Currency
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", cur.Code},
		Rows: [][]string{
			{fmt.Sprintf("Balance on %s", r.Start), known(r.StartKnown, cur.Format(r.StartBalance))},
			{"Credit", cur.Format(r.Credit)},
			{"Debit", cur.Format(r.Debit.Neg())},
			{"Expected", known(r.StartKnown, cur.Format(r.Expected()))},
			{fmt.Sprintf("Balance on %s", r.End), known(r.EndKnown, cur.Format(r.EndBalance))},
		},
	})

	switch {
	case !r.StartKnown || !r.EndKnown:
		doc.PlainText("Balances are missing, update them to check the account.")
	case r.Consistent():
		doc.PlainText(md.Bold("The account is consistent."))
	default:
		doc.PlainText(md.Bold(fmt.Sprintf("The account is off by %s.", cur.Format(r.EndBalance.Sub(r.Expected())))))
	}
	return doc.String()
}
