package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"movement-reconciliation/internal/domain"
)

// Column order of a scraped movements file.
const (
	colOperationalDate = iota
	colValueDate
	colDescription
	colAmount
	colTempBalance
	colPosition
	colKeyValue
	columnCount
)

// CSVMovementSource implements the ScrapedMovementSource interface for CSV files.
type CSVMovementSource struct{}

// NewCSVMovementSource creates a new source instance.
func NewCSVMovementSource() *CSVMovementSource {
	return &CSVMovementSource{}
}

// GetScrapedMovements reads and parses a scraped movements CSV file.
func (r *CSVMovementSource) GetScrapedMovements(ctx context.Context, path string) ([]domain.ScrapedMovement, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scraped movements file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = columnCount
	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	var movements []domain.ScrapedMovement
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}

		m, err := parseMovement(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		movements = append(movements, m)
	}
	return movements, nil
}

func parseMovement(record []string) (domain.ScrapedMovement, error) {
	var m domain.ScrapedMovement

	opDate, err := time.Parse(domain.DateLayout, record[colOperationalDate])
	if err != nil {
		return m, fmt.Errorf("could not parse operational_date '%s': %w", record[colOperationalDate], err)
	}
	valueDate, err := time.Parse(domain.DateLayout, record[colValueDate])
	if err != nil {
		return m, fmt.Errorf("could not parse value_date '%s': %w", record[colValueDate], err)
	}
	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return m, fmt.Errorf("could not parse amount '%s': %w", record[colAmount], err)
	}
	balance, err := decimal.NewFromString(record[colTempBalance])
	if err != nil {
		return m, fmt.Errorf("could not parse temp_balance '%s': %w", record[colTempBalance], err)
	}

	position := 0
	if raw := strings.TrimSpace(record[colPosition]); raw != "" {
		position, err = strconv.Atoi(raw)
		if err != nil {
			return m, fmt.Errorf("could not parse operational_date_position '%s': %w", raw, err)
		}
	}

	m.MovementFields = domain.MovementFields{
		OperationalDate:         opDate,
		ValueDate:               valueDate,
		Description:             record[colDescription],
		Amount:                  amount,
		TempBalance:             balance,
		OperationalDatePosition: position,
		KeyValue:                strings.TrimSpace(record[colKeyValue]),
	}
	return m, nil
}
