// Package dataset holds the uploaded-dataset aggregate. Parsing and
// profiling of the tabular contents happen elsewhere; this context only
// registers the upload, which is what the usage ledger meters.
package dataset

import (
	"errors"
	"time"
)

// ColumnInfo describes one column of an uploaded tabular dataset.
type ColumnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type Dataset struct {
	id          uint
	userID      uint
	name        string
	filename    string
	rowCount    int
	columnCount int
	columns     []ColumnInfo
	createdAt   time.Time
}

func NewDataset(userID uint, name, filename string, rowCount int, columns []ColumnInfo) (*Dataset, error) {
	if userID == 0 {
		return nil, errors.New("user ID cannot be zero")
	}
	if name == "" {
		return nil, errors.New("dataset name is required")
	}
	if filename == "" {
		return nil, errors.New("filename is required")
	}
	if rowCount < 0 {
		return nil, errors.New("row count cannot be negative")
	}

	return &Dataset{
		userID:      userID,
		name:        name,
		filename:    filename,
		rowCount:    rowCount,
		columnCount: len(columns),
		columns:     columns,
		createdAt:   time.Now().UTC(),
	}, nil
}

func Reconstruct(id, userID uint, name, filename string, rowCount, columnCount int, columns []ColumnInfo, createdAt time.Time) (*Dataset, error) {
	if id == 0 {
		return nil, errors.New("dataset ID cannot be zero")
	}
	if userID == 0 {
		return nil, errors.New("user ID cannot be zero")
	}
	return &Dataset{
		id:          id,
		userID:      userID,
		name:        name,
		filename:    filename,
		rowCount:    rowCount,
		columnCount: columnCount,
		columns:     columns,
		createdAt:   createdAt,
	}, nil
}

func (d *Dataset) ID() uint                { return d.id }
func (d *Dataset) UserID() uint            { return d.userID }
func (d *Dataset) Name() string            { return d.name }
func (d *Dataset) Filename() string        { return d.filename }
func (d *Dataset) RowCount() int           { return d.rowCount }
func (d *Dataset) ColumnCount() int        { return d.columnCount }
func (d *Dataset) Columns() []ColumnInfo   { return d.columns }
func (d *Dataset) CreatedAt() time.Time    { return d.createdAt }

func (d *Dataset) SetID(id uint) error {
	if id == 0 {
		return errors.New("dataset ID cannot be zero")
	}
	d.id = id
	return nil
}
