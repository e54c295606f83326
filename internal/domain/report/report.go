// Package report holds shareable analysis reports. Creation of a public
// report is metered; short-code generation is conventional glue and makes a
// single random attempt.
package report

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"
)

const shortCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const shortCodeLength = 8

type Report struct {
	id              uint
	userID          uint
	datasetID       uint
	title           string
	shortCode       string
	summaryMarkdown string
	summaryHTML     string
	createdAt       time.Time
}

func NewReport(userID, datasetID uint, title, summaryMarkdown, summaryHTML string) (*Report, error) {
	if userID == 0 {
		return nil, errors.New("user ID cannot be zero")
	}
	if title == "" {
		return nil, errors.New("report title is required")
	}

	code, err := generateShortCode()
	if err != nil {
		return nil, err
	}

	return &Report{
		userID:          userID,
		datasetID:       datasetID,
		title:           title,
		shortCode:       code,
		summaryMarkdown: summaryMarkdown,
		summaryHTML:     summaryHTML,
		createdAt:       time.Now().UTC(),
	}, nil
}

func Reconstruct(id, userID, datasetID uint, title, shortCode, summaryMarkdown, summaryHTML string, createdAt time.Time) (*Report, error) {
	if id == 0 {
		return nil, errors.New("report ID cannot be zero")
	}
	return &Report{
		id:              id,
		userID:          userID,
		datasetID:       datasetID,
		title:           title,
		shortCode:       shortCode,
		summaryMarkdown: summaryMarkdown,
		summaryHTML:     summaryHTML,
		createdAt:       createdAt,
	}, nil
}

func generateShortCode() (string, error) {
	code := make([]byte, shortCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(shortCodeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = shortCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

func (r *Report) ID() uint                { return r.id }
func (r *Report) UserID() uint            { return r.userID }
func (r *Report) DatasetID() uint         { return r.datasetID }
func (r *Report) Title() string           { return r.title }
func (r *Report) ShortCode() string       { return r.shortCode }
func (r *Report) SummaryMarkdown() string { return r.summaryMarkdown }
func (r *Report) SummaryHTML() string     { return r.summaryHTML }
func (r *Report) CreatedAt() time.Time    { return r.createdAt }

func (r *Report) SetID(id uint) error {
	if id == 0 {
		return errors.New("report ID cannot be zero")
	}
	r.id = id
	return nil
}
