package ocr

import (
	"regexp"
	"strconv"
	"time"
)

// FieldExtractor pulls one structured field out of recognized text. A false
// return is an expected miss, not an error; extraction rules evolve by
// swapping implementations without touching orchestration.
type FieldExtractor interface {
	Extract(text string) (string, bool)
}

// patternExtractor returns the first capture group of the first matching
// pattern.
type patternExtractor struct {
	patterns []*regexp.Regexp
}

func (e *patternExtractor) Extract(text string) (string, bool) {
	for _, p := range e.patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// dateExtractor finds a labeled date token and normalizes it to YYYY-MM-DD.
// Layouts are tried in order; day-first formats win over month-first.
type dateExtractor struct {
	patterns []*regexp.Regexp
	layouts  []string
}

func (e *dateExtractor) Extract(text string) (string, bool) {
	for _, p := range e.patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for _, layout := range e.layouts {
			if t, err := time.Parse(layout, m[1]); err == nil {
				return t.Format("2006-01-02"), true
			}
		}
	}
	return "", false
}

const dateToken = `(\d{1,2}[-/]\d{1,2}[-/](?:\d{4}|\d{2}))`

var dobExtractor FieldExtractor = &dateExtractor{
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)DOB[:\s]*` + dateToken),
		regexp.MustCompile(`(?i)Date of Birth[:\s]*` + dateToken),
		regexp.MustCompile(`(?i)Born[:\s]*` + dateToken),
		regexp.MustCompile(`(\d{1,2}[-/]\d{1,2}[-/]\d{4})`),
	},
	layouts: []string{"2-1-2006", "2/1/2006", "1-2-2006", "1/2/2006", "2-1-06", "2/1/06"},
}

var billNumberExtractor FieldExtractor = &patternExtractor{
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)Bill[\s#:no.]*(\d{6,})`),
		regexp.MustCompile(`(?i)Receipt[\s#:no.]*(\d{6,})`),
		regexp.MustCompile(`(?i)Invoice[\s#:no.]*(\d{6,})`),
	},
}

const amountToken = `(?:Rs?\.?|₹)?\s*(\d+(?:\.\d+)?)`

var amountExtractor FieldExtractor = &patternExtractor{
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)Grand Total[:\s]*` + amountToken),
		regexp.MustCompile(`(?i)Total[:\s]*` + amountToken),
		regexp.MustCompile(`(?i)Amount[:\s]*` + amountToken),
	},
}

// ParseDOB scans recognized text for a date of birth and returns it
// normalized to YYYY-MM-DD.
func ParseDOB(text string) (string, bool) {
	return dobExtractor.Extract(text)
}

// BillFields are the candidates extracted from a bill image. Either field may
// be absent.
type BillFields struct {
	BillNumber string
	HasNumber  bool
	Amount     float64
	HasAmount  bool
}

// Complete reports whether both the bill number and the amount were found.
func (f BillFields) Complete() bool {
	return f.HasNumber && f.HasAmount
}

// ParseBill scans recognized text for a bill number (first run of 6+ digits
// after a Bill/Receipt/Invoice label) and a total amount (first decimal after
// a Total/Amount/Grand Total label, currency symbol optional).
func ParseBill(text string) BillFields {
	var f BillFields
	if n, ok := billNumberExtractor.Extract(text); ok {
		f.BillNumber = n
		f.HasNumber = true
	}
	if raw, ok := amountExtractor.Extract(text); ok {
		if amount, err := strconv.ParseFloat(raw, 64); err == nil {
			f.Amount = amount
			f.HasAmount = true
		}
	}
	return f
}
