// Package export mirrors expenses to a Google Sheet. The sheet is an
// append-only journal, the local database stays the source of truth.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"pocketbook/internal/core"
)

// Writer appends expense rows to one sheet of one spreadsheet using a
// service account.
type Writer struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Credentials selects the service account source. Inline JSON wins over the
// file path when both are set.
type Credentials struct {
	JSON string
	File string
}

func NewWriter(ctx context.Context, spreadsheetID, sheetName string, creds Credentials) (*Writer, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	var credentialsJSON []byte
	switch {
	case creds.JSON != "":
		credentialsJSON = []byte(creds.JSON)
	case creds.File != "":
		data, err := os.ReadFile(creds.File)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Writer{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// AppendExpense writes one row for the expense. Returns the range the API
// reports the row landed in.
func (w *Writer) AppendExpense(ctx context.Context, e core.ExpenseWithCategory) (string, error) {
	if w.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:H", w.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{expenseRow(e)}}

	resp, err := w.svc.Spreadsheets.Values.Append(w.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", w.sheetName, err)
	}

	if resp.Updates != nil {
		return resp.Updates.UpdatedRange, nil
	}
	return "", nil
}

// expenseRow lays out the exported columns: date, amount in major units,
// currency, category, merchant, note, payment method, id.
func expenseRow(e core.ExpenseWithCategory) []any {
	return []any{
		e.OccurredAt.UTC().Format("2006-01-02"),
		core.MajorUnits(e.AmountMinor),
		e.Currency,
		e.CategoryName,
		e.Merchant,
		e.Note,
		e.PaymentMethod,
		e.ID,
	}
}
