package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mewicrm/mewi/internal/importer"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"nom;email;societe;numero_facture;montant;echeance;description",
		"Pierre Dubois;pierre@dubois.fr;Dubois & Fils;FAC-2024-001;8 750,50;15/11/2024;Prestations de conseil",
		"Jean Martin;jean@martin.fr;;FAC-2024-002;4500.00;2024-12-01",
	}, "\n")

	rows, err := importer.NewService().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Pierre Dubois", rows[0].Name)
	assert.Equal(t, "Dubois & Fils", rows[0].Company)
	assert.Equal(t, "FAC-2024-001", rows[0].InvoiceNumber)
	assert.InDelta(t, 8750.50, rows[0].Amount, 1e-9)
	assert.Equal(t, time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC), rows[0].DueDate)
	assert.Equal(t, "Prestations de conseil", rows[0].Description)

	assert.Equal(t, "Jean Martin", rows[1].Name)
	assert.InDelta(t, 4500.00, rows[1].Amount, 1e-9)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), rows[1].DueDate)
}

func TestParse_NoHeader(t *testing.T) {
	input := "Pierre Dubois;pierre@dubois.fr;;FAC-1;100,00;01/01/2025"

	rows, err := importer.NewService().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 100.0, rows[0].Amount, 1e-9)
}

func TestParse_DuplicateInvoiceNumber(t *testing.T) {
	input := strings.Join([]string{
		"A;a@x.fr;;FAC-1;100;01/01/2025",
		"B;b@x.fr;;FAC-1;200;02/01/2025",
	}, "\n")

	_, err := importer.NewService().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FAC-1")
}

func TestParse_BadAmount(t *testing.T) {
	input := "A;a@x.fr;;FAC-1;cent euros;01/01/2025"

	_, err := importer.NewService().Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestParse_BadDate(t *testing.T) {
	input := "A;a@x.fr;;FAC-1;100;janvier"

	_, err := importer.NewService().Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestParse_MissingColumns(t *testing.T) {
	input := "A;a@x.fr;FAC-1"

	_, err := importer.NewService().Parse(strings.NewReader(input))
	assert.Error(t, err)
}
