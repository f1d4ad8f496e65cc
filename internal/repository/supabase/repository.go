package supabase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/aruizdev/tablero/internal/config"
	"github.com/aruizdev/tablero/internal/domain/models"
)

// Repository defines the read operations the dashboard issues against the
// hosted datastore.
type Repository interface {
	FetchOccupancyRecords(ctx context.Context, start, end time.Time, shift models.Shift) ([]models.RawOccupancyRecord, error)
}

// RestRepository implements Repository over the datastore's REST surface.
type RestRepository struct {
	httpClient *resty.Client
}

// occupancyResponse mirrors the occupancy-records endpoint payload.
type occupancyResponse struct {
	Records []occupancyRow `json:"records"`
}

type occupancyRow struct {
	Date         string `json:"date"`
	Shift        string `json:"shift"`
	Reservations int    `json:"reservations"`
	Guests       int    `json:"guests"`
}

// apiError mirrors the datastore error payload.
type apiError struct {
	Error string `json:"error"`
}

// NewRestRepository builds the datastore client from configuration.
func NewRestRepository(cfg config.SupabaseConfig) *RestRepository {
	base := strings.TrimSuffix(cfg.URL, "/")

	restyClient := resty.New().
		SetBaseURL(base).
		SetHeader("apikey", cfg.APIKey).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &RestRepository{httpClient: restyClient}
}

// FetchOccupancyRecords loads the raw per-day, per-shift occupancy rows for
// the requested window.
func (r *RestRepository) FetchOccupancyRecords(ctx context.Context, start, end time.Time, shift models.Shift) ([]models.RawOccupancyRecord, error) {
	result := new(occupancyResponse)
	apiErr := new(apiError)

	resp, err := r.httpClient.R().
		SetContext(ctx).
		SetQueryParam("date_start", start.Format(models.DateLayout)).
		SetQueryParam("date_end", end.Format(models.DateLayout)).
		SetQueryParam("shift", string(shift)).
		SetResult(result).
		SetError(apiErr).
		Get("/occupancy-records")
	if err != nil {
		return nil, fmt.Errorf("fetch occupancy records: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Error
		if message == "" {
			message = resp.Status()
		}
		return nil, fmt.Errorf("datastore error: %s", message)
	}

	records := make([]models.RawOccupancyRecord, 0, len(result.Records))
	for _, row := range result.Records {
		date, err := time.ParseInLocation(models.DateLayout, row.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("malformed record date %q: %w", row.Date, err)
		}

		rowShift, err := models.ParseShift(row.Shift)
		if err != nil {
			return nil, fmt.Errorf("malformed record shift: %w", err)
		}

		records = append(records, models.RawOccupancyRecord{
			Date:         date,
			Shift:        rowShift,
			Reservations: row.Reservations,
			Guests:       row.Guests,
		})
	}

	return records, nil
}
