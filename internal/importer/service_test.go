package importer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/collecta/internal/importer"
	"github.com/MrJamesThe3rd/collecta/internal/importer/loansheet"
)

func clock() time.Time {
	return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func TestFormatFromFilename(t *testing.T) {
	type testCase struct {
		name    string
		file    string
		want    importer.Format
		wantErr bool
	}

	tests := []testCase{
		{name: "CSV", file: "loans.csv", want: importer.FormatCSV},
		{name: "XLSX Upper Case", file: "Portfolio.XLSX", want: importer.FormatXLSX},
		{name: "Legacy XLS", file: "old.xls", wantErr: true},
		{name: "No Extension", file: "loans", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importer.FormatFromFilename(tt.file)
			if tt.wantErr {
				require.ErrorIs(t, err, importer.ErrUnsupportedFormat)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_ImportCSV(t *testing.T) {
	csv := "Account Number,Client,Loan Amount,Start Date\nLN001,Alice,\"5,000\",15-Jan-24\n,NoAccount,100,\n"

	res, err := importer.NewService(clock).Import(importer.FormatCSV, strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, res.Loans, 1)
	assert.Equal(t, "Alice", res.Loans[0].Client)
	assert.Equal(t, "2024-01-15", res.Loans[0].StartDate.String())
	assert.Len(t, res.Skipped, 1)
}

func TestService_ImportCSVSerialDates(t *testing.T) {
	csv := "Account Number,Loan Amount,Start Date,Product\n00123,1000,45000,Small Enterprise\n"

	res, err := importer.NewService(clock).Import(importer.FormatCSV, strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Loans, 1)

	got := res.Loans[0]
	assert.Equal(t, "00123", got.AccountNumber)
	assert.Equal(t, "1000", got.OriginalAmount.String())
	assert.Equal(t, "2023-03-15", got.StartDate.String())
	assert.Equal(t, "2023-07-15", got.MaturedOn.String())
}

func TestService_ImportXLSX(t *testing.T) {
	f := excelize.NewFile()
	name := f.GetSheetName(0)

	require.NoError(t, f.SetSheetRow(name, "A1", &[]any{"Account Number", "Loan Amount", "Start Date", "Product"}))
	require.NoError(t, f.SetSheetRow(name, "A2", &[]any{"LN001", 2500, 45000, "Lease Financing"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	res, err := importer.NewService(clock).Import(importer.FormatXLSX, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, res.Loans, 1)

	assert.Equal(t, "2023-03-15", res.Loans[0].StartDate.String())
	assert.Equal(t, "2025-09-15", res.Loans[0].MaturedOn.String())
}

func TestService_ImportErrors(t *testing.T) {
	svc := importer.NewService(clock)

	_, err := svc.Import("xls", strings.NewReader("x"))
	require.ErrorIs(t, err, importer.ErrUnsupportedFormat)

	_, err = svc.Import(importer.FormatCSV, strings.NewReader(""))
	require.ErrorIs(t, err, loansheet.ErrNoHeader)

	_, err = svc.Import(importer.FormatXLSX, strings.NewReader("this is not a zip"))
	require.ErrorIs(t, err, importer.ErrUnreadable)
}
