// Package importer parses creditor-supplied debt files (CSV) into
// debtor and invoice create parameters.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mewicrm/mewi/internal/encoding"
)

// Row is one debt line of an uploaded file.
type Row struct {
	Name          string
	Email         string
	Company       string
	InvoiceNumber string
	Amount        float64
	DueDate       time.Time
	Description   string
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Parse reads a semicolon-delimited debt file. The expected columns
// are nom;email;societe;numero_facture;montant;echeance;description,
// with an optional header line. Amounts accept the French convention
// (comma decimal separator, space thousand grouping); dates accept
// 02/01/2006 and 2006-01-02. Duplicate invoice numbers within one
// file are rejected before anything is created.
func (s *Service) Parse(r io.Reader) ([]Row, error) {
	decoded, err := encoding.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding file: %w", err)
	}

	reader := csv.NewReader(decoded)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []Row

	seen := make(map[string]int)

	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line+1, err)
		}

		line++

		if line == 1 && isHeader(record) {
			continue
		}

		if len(record) < 6 {
			return nil, fmt.Errorf("line %d: expected at least 6 columns, got %d", line, len(record))
		}

		row := Row{
			Name:          strings.TrimSpace(record[0]),
			Email:         strings.TrimSpace(record[1]),
			Company:       strings.TrimSpace(record[2]),
			InvoiceNumber: strings.TrimSpace(record[3]),
		}

		if row.Name == "" || row.InvoiceNumber == "" {
			return nil, fmt.Errorf("line %d: missing name or invoice number", line)
		}

		if prev, dup := seen[row.InvoiceNumber]; dup {
			return nil, fmt.Errorf("line %d: invoice number %s already used on line %d", line, row.InvoiceNumber, prev)
		}

		seen[row.InvoiceNumber] = line

		row.Amount, err = parseAmount(record[4])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row.DueDate, err = parseDate(record[5])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if len(record) > 6 {
			row.Description = strings.TrimSpace(record[6])
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}

	first := strings.ToLower(strings.TrimSpace(record[0]))

	return first == "nom" || first == "name"
}

func parseAmount(raw string) (float64, error) {
	cleaned := strings.NewReplacer(" ", "", " ", "", "€", "", ",", ".").Replace(strings.TrimSpace(raw))

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("bad amount %q", raw)
	}

	return amount, nil
}

var dateLayouts = []string{"02/01/2006", "2006-01-02"}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("bad date %q", raw)
}
