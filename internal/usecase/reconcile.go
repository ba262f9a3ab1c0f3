package usecase

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"practice-reconciliation/internal/domain"
)

// provenance records which side(s) contributed to a joined row.
type provenance int

const (
	provenanceBoth provenance = iota
	provenanceBankOnly
	provenancePracticeOnly
)

// normalizedRecord is an input row with its join key and amount resolved.
type normalizedRecord struct {
	reference string
	amount    float64
	row       domain.Row
}

// Reconcile performs a full outer join of bank and practice on the trimmed
// reference column, computes bank minus practice for every joined row and
// classifies it. Rows keep bank order, each bank row followed by its practice
// partners in practice order, then the practice rows nobody matched.
// A reference repeated on one side is paired with every partner on the other.
// The input tables are not modified.
func Reconcile(bank, practice *domain.Table, opts domain.Options) (*domain.Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reconciliation options: %w", err)
	}
	if err := requireColumns(domain.SideBank, bank, opts.BankReferenceColumn, opts.BankAmountColumn); err != nil {
		return nil, err
	}
	if err := requireColumns(domain.SidePractice, practice, opts.PracticeReferenceColumn, opts.PracticeAmountColumn); err != nil {
		return nil, err
	}

	bankRecs := normalizeTable(bank.Clone(), opts.BankReferenceColumn, opts.BankAmountColumn)
	practiceRecs := normalizeTable(practice.Clone(), opts.PracticeReferenceColumn, opts.PracticeAmountColumn)
	tolerance := decimal.NewFromFloat(opts.Tolerance)

	report := &domain.Report{
		Columns: outputColumns(bank, practice, opts),
		Rows:    make([]domain.ReconciliationRow, 0, len(bankRecs)+len(practiceRecs)),
	}

	practiceByRef := make(map[string][]int, len(practiceRecs))
	for i, rec := range practiceRecs {
		practiceByRef[rec.reference] = append(practiceByRef[rec.reference], i)
	}
	matchedPractice := make([]bool, len(practiceRecs))

	for i := range bankRecs {
		partners := practiceByRef[bankRecs[i].reference]
		if len(partners) == 0 {
			report.Rows = append(report.Rows, joinRow(&bankRecs[i], nil, provenanceBankOnly, tolerance))
			continue
		}
		for _, j := range partners {
			matchedPractice[j] = true
			report.Rows = append(report.Rows, joinRow(&bankRecs[i], &practiceRecs[j], provenanceBoth, tolerance))
		}
	}
	for j := range practiceRecs {
		if !matchedPractice[j] {
			report.Rows = append(report.Rows, joinRow(nil, &practiceRecs[j], provenancePracticeOnly, tolerance))
		}
	}

	report.Summary = summarize(report.Rows, bankRecs, practiceRecs)
	return report, nil
}

func requireColumns(side domain.Side, t *domain.Table, columns ...string) error {
	for _, col := range columns {
		if t == nil || !t.HasColumn(col) {
			return &domain.MissingColumnError{Side: side, Column: col}
		}
	}
	return nil
}

func normalizeTable(t *domain.Table, refColumn, amountColumn string) []normalizedRecord {
	recs := make([]normalizedRecord, len(t.Rows))
	for i, row := range t.Rows {
		recs[i] = normalizedRecord{
			reference: NormalizeReference(row.Get(refColumn)),
			amount:    NormalizeAmount(row.Get(amountColumn)),
			row:       row,
		}
	}
	return recs
}

// NormalizeReference turns a reference cell into its join key.
func NormalizeReference(v domain.Value) string {
	return strings.TrimSpace(v.String())
}

// NormalizeAmount turns an amount cell into a finite float. Empty,
// unparseable and non-finite cells become 0.
func NormalizeAmount(v domain.Value) float64 {
	if f, ok := v.Float(); ok {
		if isFinite(f) {
			return f
		}
		return 0
	}
	f, err := ParseAmount(v.String())
	if err != nil {
		return 0
	}
	return f
}

// ParseAmount parses a decimal amount, rejecting blanks and non-finite values.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty amount")
	}
	if isHex(s) {
		return 0, fmt.Errorf("hexadecimal amount '%s' is not supported", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse amount '%s': %w", s, err)
	}
	if !isFinite(f) {
		return 0, fmt.Errorf("amount '%s' is not finite", s)
	}
	return f, nil
}

func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func joinRow(bank, practice *normalizedRecord, prov provenance, tolerance decimal.Decimal) domain.ReconciliationRow {
	var rr domain.ReconciliationRow
	bankAmount, practiceAmount := decimal.Zero, decimal.Zero

	if bank != nil {
		rr.Reference = bank.reference
		rr.Bank = bank.row
		amt := bank.amount
		rr.AmountBank = &amt
		bankAmount = decimal.NewFromFloat(amt)
	}
	if practice != nil {
		rr.Reference = practice.reference
		rr.Practice = practice.row
		amt := practice.amount
		rr.AmountPractice = &amt
		practiceAmount = decimal.NewFromFloat(amt)
	}

	diff := bankAmount.Sub(practiceAmount)
	rr.Difference = diff.InexactFloat64()
	rr.Status = classify(prov, diff.Abs().LessThanOrEqual(tolerance))
	return rr
}

func classify(prov provenance, withinTolerance bool) domain.Status {
	switch prov {
	case provenanceBankOnly:
		return domain.StatusMissingInPractice
	case provenancePracticeOnly:
		return domain.StatusMissingInBank
	}
	if withinTolerance {
		return domain.StatusMatched
	}
	return domain.StatusAmountMismatch
}

// outputColumns lays out the report header: bank columns in bank order, then
// practice columns without the reference, then difference and status.
// Pass-through names shared by both sides or clashing with a computed
// column get a _bank or _practice suffix, plus ".1", ".2", ... when that
// name is already in use.
func outputColumns(bank, practice *domain.Table, opts domain.Options) []domain.ColumnSource {
	reserved := map[string]bool{
		domain.ColumnReference:      true,
		domain.ColumnAmountBank:     true,
		domain.ColumnAmountPractice: true,
		domain.ColumnDifference:     true,
		domain.ColumnStatus:         true,
	}
	passthrough := func(t *domain.Table, ref, amount string) map[string]bool {
		m := make(map[string]bool)
		for _, c := range t.Columns {
			if c != ref && c != amount {
				m[c] = true
			}
		}
		return m
	}
	bankExtra := passthrough(bank, opts.BankReferenceColumn, opts.BankAmountColumn)
	practiceExtra := passthrough(practice, opts.PracticeReferenceColumn, opts.PracticeAmountColumn)

	// Names kept as-is are claimed first so a suffixed name never shadows one.
	taken := make(map[string]bool, len(reserved)+len(bankExtra)+len(practiceExtra))
	for name := range reserved {
		taken[name] = true
	}
	for _, pair := range [][2]map[string]bool{{bankExtra, practiceExtra}, {practiceExtra, bankExtra}} {
		for c := range pair[0] {
			if !pair[1][c] && !reserved[c] {
				taken[c] = true
			}
		}
	}

	outName := func(col string, side domain.Side, other map[string]bool) string {
		if !other[col] && !reserved[col] {
			return col
		}
		base := col + "_" + string(side)
		name := base
		for n := 1; taken[name]; n++ {
			name = fmt.Sprintf("%s.%d", base, n)
		}
		taken[name] = true
		return name
	}

	cols := make([]domain.ColumnSource, 0, len(bank.Columns)+len(practice.Columns)+2)
	for _, c := range bank.Columns {
		if c == opts.BankReferenceColumn {
			cols = append(cols, domain.ColumnSource{Name: domain.ColumnReference})
		}
		if c == opts.BankAmountColumn {
			cols = append(cols, domain.ColumnSource{Name: domain.ColumnAmountBank})
		}
		if bankExtra[c] {
			cols = append(cols, domain.ColumnSource{Name: outName(c, domain.SideBank, practiceExtra), Side: domain.SideBank, Source: c})
		}
	}
	for _, c := range practice.Columns {
		if c == opts.PracticeAmountColumn {
			cols = append(cols, domain.ColumnSource{Name: domain.ColumnAmountPractice})
		}
		if practiceExtra[c] {
			cols = append(cols, domain.ColumnSource{Name: outName(c, domain.SidePractice, bankExtra), Side: domain.SidePractice, Source: c})
		}
	}

	return append(cols,
		domain.ColumnSource{Name: domain.ColumnDifference},
		domain.ColumnSource{Name: domain.ColumnStatus},
	)
}

func summarize(rows []domain.ReconciliationRow, bankRecs, practiceRecs []normalizedRecord) domain.Summary {
	s := domain.Summary{
		BankRows:            len(bankRecs),
		PracticeRows:        len(practiceRecs),
		OutputRows:          len(rows),
		StatusCounts:        make(map[domain.Status]int, len(domain.Statuses)),
		DuplicateReferences: make([]string, 0),
	}
	for _, st := range domain.Statuses {
		s.StatusCounts[st] = 0
	}

	net := decimal.Zero
	for _, r := range rows {
		s.StatusCounts[r.Status]++
		net = net.Add(decimal.NewFromFloat(r.Difference))
	}
	s.NetDifference = net.InexactFloat64()

	seen := make(map[string]bool)
	for _, recs := range [][]normalizedRecord{bankRecs, practiceRecs} {
		counts := make(map[string]int, len(recs))
		for _, rec := range recs {
			counts[rec.reference]++
		}
		for _, rec := range recs {
			if counts[rec.reference] > 1 && !seen[rec.reference] {
				seen[rec.reference] = true
				s.DuplicateReferences = append(s.DuplicateReferences, rec.reference)
			}
		}
	}
	return s
}
