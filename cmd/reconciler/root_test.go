package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practice-reconciliation/internal/domain"
	"practice-reconciliation/internal/gateway"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRootCmd_WritesWorkbook(t *testing.T) {
	dir := t.TempDir()
	bank := writeFile(t, dir, "bank.csv", "Reference,Amount,Date\nA100,250.00,2025-01-01\n A200 ,100.00,2025-01-02\nA300,N/A,2025-01-03\n")
	practice := writeFile(t, dir, "practice.csv", "Reference,Amount,Patient\nA100,250.03,Smith\nA300,0,Jones\nB300,75.50,Brown\n")
	output := filepath.Join(dir, "report.xlsx")

	stdout, err := execute(t, bank, practice, output)
	require.NoError(t, err)
	assert.Equal(t, "Reconciliation written to "+output+"\n", stdout)

	got, err := gateway.NewFileTableRepository().LoadTable(context.Background(), output)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Reference", "Amount_bank", "Date", "Amount_practice", "Patient", "difference", "status",
	}, got.Columns)
	require.Len(t, got.Rows, 4)

	statuses := make(map[string]string)
	for _, row := range got.Rows {
		statuses[row.Get("Reference").String()] = row.Get("status").String()
	}
	assert.Equal(t, map[string]string{
		"A100": "amount_mismatch",
		"A200": "missing_in_practice",
		"A300": "matched",
		"B300": "missing_in_bank",
	}, statuses)
	assert.Equal(t, domain.Number(-0.03), got.Rows[0].Get("difference"))
	assert.Equal(t, domain.Empty, got.Rows[1].Get("Amount_practice"))
}

func TestRootCmd_CustomColumnsAndTolerance(t *testing.T) {
	dir := t.TempDir()
	bank := writeFile(t, dir, "bank.csv", "TxRef,Value\nA100,250.00\n")
	practice := writeFile(t, dir, "practice.csv", "Invoice,Paid\nA100,250.03\n")
	output := filepath.Join(dir, "report.csv")

	_, err := execute(t, bank, practice, output,
		"--bank-reference", "TxRef", "--bank-amount", "Value",
		"--practice-reference", "Invoice", "--practice-amount", "Paid",
		"--tolerance", "0.05",
	)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Reference,Amount_bank,Amount_practice,difference,status\nA100,250,250.03,-0.03,matched\n", string(content))
}

func TestRootCmd_Summary(t *testing.T) {
	dir := t.TempDir()
	bank := writeFile(t, dir, "bank.csv", "Reference,Amount\nA1,10\nA1,10\n")
	practice := writeFile(t, dir, "practice.csv", "Reference,Amount\nA1,10\n")
	output := filepath.Join(dir, "report.csv")

	stdout, err := execute(t, bank, practice, output, "--summary")
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewBufferString(stdout))
	var summary domain.Summary
	require.NoError(t, dec.Decode(&summary))
	assert.Equal(t, 2, summary.OutputRows)
	assert.Equal(t, 2, summary.StatusCounts[domain.StatusMatched])
	assert.Equal(t, []string{"A1"}, summary.DuplicateReferences)
	assert.Contains(t, stdout, "Reconciliation written to "+output)
}

func TestRootCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.csv", "Reference,Amount\nA1,1\n")
	noAmount := writeFile(t, dir, "no_amount.csv", "Reference,Value\nA1,1\n")

	tests := []struct {
		name      string
		args      []string
		errTarget interface{}
	}{
		{
			name:      "unreadable bank file",
			args:      []string{filepath.Join(dir, "missing.csv"), good, filepath.Join(dir, "out1.csv")},
			errTarget: new(*domain.FileReadError),
		},
		{
			name:      "missing practice amount column",
			args:      []string{good, noAmount, filepath.Join(dir, "out2.csv")},
			errTarget: new(*domain.MissingColumnError),
		},
		{
			name:      "unwritable output",
			args:      []string{good, good, filepath.Join(dir, "nope", "out3.csv")},
			errTarget: new(*domain.FileWriteError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.ErrorAs(t, err, tt.errTarget)
			assert.Empty(t, stdout)

			_, statErr := os.Stat(tt.args[2])
			assert.True(t, os.IsNotExist(statErr), "no output may be written after a fatal error")
		})
	}
}

func TestRootCmd_InvalidInvocation(t *testing.T) {
	_, err := execute(t, "only-one.csv")
	assert.Error(t, err)

	dir := t.TempDir()
	good := writeFile(t, dir, "good.csv", "Reference,Amount\n")
	_, err = execute(t, good, good, filepath.Join(dir, "out.csv"), "--tolerance", "-1")
	assert.ErrorContains(t, err, "invalid configuration")
}
