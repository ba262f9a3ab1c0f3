package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"practice-reconciliation/internal/domain"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name      string
		value     domain.Value
		wantKind  domain.ValueKind
		wantText  string
		wantEmpty bool
	}{
		{"Text", domain.Text("A100"), domain.KindText, "A100", false},
		{"Text keeps padding", domain.Text(" A100 "), domain.KindText, " A100 ", false},
		{"Blank text is empty", domain.Text("  "), domain.KindEmpty, "", true},
		{"Number", domain.Number(250.03), domain.KindNumber, "250.03", false},
		{"Whole number", domain.Number(100), domain.KindNumber, "100", false},
		{"Zero value", domain.Value{}, domain.KindEmpty, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKind, tt.value.Kind())
			assert.Equal(t, tt.wantText, tt.value.String())
			assert.Equal(t, tt.wantEmpty, tt.value.IsEmpty())
		})
	}

	f, ok := domain.Number(1.5).Float()
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)
	_, ok = domain.Text("1.5").Float()
	assert.False(t, ok)
}

func TestTable(t *testing.T) {
	table := domain.NewTable([]string{"Reference", "Amount"},
		[]domain.Value{domain.Text("A1"), domain.Number(1)},
		[]domain.Value{domain.Text("A2")},
	)

	assert.Equal(t, 2, table.Len())
	assert.True(t, table.HasColumn("Amount"))
	assert.False(t, table.HasColumn("amount"))
	assert.Equal(t, []domain.Value{domain.Text("A2"), domain.Empty}, table.Record(1))
	assert.Equal(t, domain.Empty, table.Rows[0].Get("Missing"))
	assert.False(t, table.Rows[0].IsBlank())
	assert.True(t, domain.Row{"A": domain.Empty}.IsBlank())

	var nilTable *domain.Table
	assert.Equal(t, 0, nilTable.Len())
	assert.Nil(t, nilTable.Clone())
}

func TestTable_Clone(t *testing.T) {
	table := domain.NewTable([]string{"Reference"}, []domain.Value{domain.Text("A1")})
	clone := table.Clone()
	assert.Equal(t, table, clone)

	clone.Rows[0]["Reference"] = domain.Text("changed")
	clone.Columns[0] = "Other"

	assert.Equal(t, domain.Text("A1"), table.Rows[0]["Reference"])
	assert.Equal(t, "Reference", table.Columns[0])
}
