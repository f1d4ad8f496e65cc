package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/aruizdev/tablero/internal/config"
	"github.com/aruizdev/tablero/internal/domain/models"
)

const exportRange = "Ocupacion!A:E"

// Exporter defines the report export operations supported by the
// spreadsheet adapter.
type Exporter interface {
	AppendOccupancyReport(ctx context.Context, filter models.Filter, metrics models.AggregatedMetrics) error
}

// GoogleSheetExporter implements Exporter using the official Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendOccupancyReport appends a header row, one row per aggregated day and
// a totals row for the evaluated period.
func (r *GoogleSheetExporter) AppendOccupancyReport(ctx context.Context, filter models.Filter, metrics models.AggregatedMetrics) error {
	rows := [][]interface{}{
		{
			fmt.Sprintf("Periodo %s a %s (%s)", filter.DateStart.Format(models.DateLayout), filter.DateEnd.Format(models.DateLayout), filter.Shift),
			"Comensales",
			"Reservas",
			"Ocupacion %",
			"Capacidad perdida",
		},
	}

	for _, day := range metrics.PerDay {
		rows = append(rows, []interface{}{day.Date.Format(models.DateLayout), day.Guests, day.Reservations, "", ""})
	}

	rows = append(rows, []interface{}{
		"Total",
		metrics.TotalGuests,
		metrics.TotalReservations,
		metrics.OccupancyRatePct,
		metrics.LostCapacity,
	})

	payload := &sheetsapi.ValueRange{Values: rows}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, exportRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append occupancy report: %w", err)
	}

	r.logger.Debug("occupancy report exported", zap.Int("rows", len(rows)))
	return nil
}
