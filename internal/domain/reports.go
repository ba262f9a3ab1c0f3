package domain

// Output column names added by the reconciler.
const (
	ColumnReference      = "Reference"
	ColumnAmountBank     = "Amount_bank"
	ColumnAmountPractice = "Amount_practice"
	ColumnDifference     = "difference"
	ColumnStatus         = "status"
)

// Status is the reconciliation verdict for one output row.
type Status string

const (
	StatusMatched           Status = "matched"
	StatusAmountMismatch    Status = "amount_mismatch"
	StatusMissingInPractice Status = "missing_in_practice"
	StatusMissingInBank     Status = "missing_in_bank"
)

// Statuses lists every status in report order.
var Statuses = []Status{StatusMatched, StatusAmountMismatch, StatusMissingInPractice, StatusMissingInBank}

// ColumnSource says where an output column takes its value from.
type ColumnSource struct {
	Name   string // output header
	Side   Side   // empty for computed columns
	Source string // input header on Side
}

// ReconciliationRow is one joined row of the report.
type ReconciliationRow struct {
	Reference string `json:"reference"`
	// Bank and Practice are the contributing input rows, nil when that side has no match.
	Bank           Row      `json:"-"`
	Practice       Row      `json:"-"`
	AmountBank     *float64 `json:"amount_bank"`
	AmountPractice *float64 `json:"amount_practice"`
	Difference     float64  `json:"difference"`
	Status         Status   `json:"status"`
}

// Summary gives high-level statistics of a reconciliation run.
type Summary struct {
	BankRows            int            `json:"bank_rows"`
	PracticeRows        int            `json:"practice_rows"`
	OutputRows          int            `json:"output_rows"`
	StatusCounts        map[Status]int `json:"status_counts"`
	NetDifference       float64        `json:"net_difference"`
	DuplicateReferences []string       `json:"duplicate_references"`
}

// Report is the result of reconciling two tables.
type Report struct {
	Columns []ColumnSource      `json:"-"`
	Rows    []ReconciliationRow `json:"rows"`
	Summary Summary             `json:"summary"`
}

// Table renders the report as an output table: the original columns of both
// sides, Amount_bank, Amount_practice, difference and status.
func (r *Report) Table() *Table {
	t := &Table{Columns: make([]string, len(r.Columns))}
	for i, c := range r.Columns {
		t.Columns[i] = c.Name
	}

	for _, rr := range r.Rows {
		row := make(Row, len(r.Columns))
		for _, c := range r.Columns {
			row[c.Name] = rr.cell(c)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func (rr ReconciliationRow) cell(c ColumnSource) Value {
	switch c.Side {
	case SideBank:
		return rr.Bank.Get(c.Source)
	case SidePractice:
		return rr.Practice.Get(c.Source)
	}

	switch c.Name {
	case ColumnReference:
		return Text(rr.Reference)
	case ColumnAmountBank:
		return optionalNumber(rr.AmountBank)
	case ColumnAmountPractice:
		return optionalNumber(rr.AmountPractice)
	case ColumnDifference:
		return Number(rr.Difference)
	case ColumnStatus:
		return Text(string(rr.Status))
	}
	return Empty
}

func optionalNumber(f *float64) Value {
	if f == nil {
		return Empty
	}
	return Number(*f)
}
