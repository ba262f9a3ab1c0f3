package gateway

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"practice-reconciliation/internal/domain"
)

type format int

const (
	formatCSV format = iota + 1
	formatXLSX
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return formatCSV, nil
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return formatXLSX, nil
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// FileTableRepository implements the TableRepository interface for spreadsheet files.
// The format is chosen from the file extension: .csv or an Excel workbook.
type FileTableRepository struct{}

// NewFileTableRepository creates a new repository instance.
func NewFileTableRepository() *FileTableRepository {
	return &FileTableRepository{}
}

// LoadTable reads the table stored at path. Any failure is a *domain.FileReadError.
func (r *FileTableRepository) LoadTable(ctx context.Context, path string) (*domain.Table, error) {
	table, err := r.load(path)
	if err != nil {
		return nil, &domain.FileReadError{Path: path, Err: err}
	}
	return table, nil
}

func (r *FileTableRepository) load(path string) (*domain.Table, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch f {
	case formatCSV:
		return readCSV(file)
	default:
		return readXLSX(file)
	}
}

// SaveTable writes table to path. The document is written to a temporary
// file next to path and renamed into place, so a failed write never leaves
// a partial report behind. Any failure is a *domain.FileWriteError.
func (r *FileTableRepository) SaveTable(ctx context.Context, path string, table *domain.Table) error {
	if err := r.save(path, table); err != nil {
		return &domain.FileWriteError{Path: path, Err: err}
	}
	return nil
}

func (r *FileTableRepository) save(path string, table *domain.Table) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}

	var write func(io.Writer, *domain.Table) error
	switch f {
	case formatCSV:
		write = writeCSV
	default:
		write = writeXLSX
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp, table); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
