// README: Line parser for the historical ride export; malformed rows fail locally, never the batch.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const recordFields = 18

// defaultDriverRating stands in for empty or unparsable rating strings.
const defaultDriverRating = 5.0

type ParseError struct {
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Field, e.Reason)
}

func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Accepted timestamp layouts, tried in order; first match wins.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006 15:04",
}

type Parser struct {
	// decimalSeparator is the decimal mark of the rating column. The
	// export uses a comma locale; this is explicit configuration, not
	// a hidden culture dependency.
	decimalSeparator rune
}

func NewParser(decimalSeparator rune) *Parser {
	if decimalSeparator == 0 {
		decimalSeparator = ','
	}
	return &Parser{decimalSeparator: decimalSeparator}
}

// ParseLine parses one data row. Unparsable timestamps and negative or
// non-finite numeric fields fail the row; the caller decides whether
// to skip or abort.
func (p *Parser) ParseLine(line string) (*Record, error) {
	parts := strings.Split(line, ";")
	if len(parts) < recordFields {
		return nil, &ParseError{Field: "row", Reason: fmt.Sprintf("expected %d fields, got %d", recordFields, len(parts))}
	}

	orderTS, err := parseTimestamp("order_timestamp", parts[1])
	if err != nil {
		return nil, err
	}

	// An empty registration date is tolerated (experience clamps to
	// zero downstream); a present but unparsable one fails the row.
	var regDate time.Time
	if strings.TrimSpace(parts[7]) != "" {
		regDate, err = parseTimestamp("driver_reg_date", parts[7])
		if err != nil {
			return nil, err
		}
	}

	// Tender timestamp feeds no feature; best effort only.
	tenderTS, _ := tryTimestamp(parts[5])

	distance, err := parseNonNegative("distance_in_meters", parts[2])
	if err != nil {
		return nil, err
	}
	duration, err := parseNonNegative("duration_in_seconds", parts[3])
	if err != nil {
		return nil, err
	}
	pickupM, err := parseNonNegative("pickup_in_meters", parts[12])
	if err != nil {
		return nil, err
	}
	pickupS, err := parseNonNegative("pickup_in_seconds", parts[13])
	if err != nil {
		return nil, err
	}
	priceStart, err := parseNonNegative("price_start_local", parts[15])
	if err != nil {
		return nil, err
	}
	priceBid, err := parseNonNegative("price_bid_local", parts[16])
	if err != nil {
		return nil, err
	}

	status := strings.ToLower(strings.TrimSpace(parts[17]))

	return &Record{
		OrderID:         parts[0],
		OrderTimestamp:  orderTS,
		DistanceMeters:  distance,
		DurationSeconds: duration,
		TenderID:        parts[4],
		TenderTimestamp: tenderTS,
		DriverID:        parts[6],
		DriverRegDate:   regDate,
		DriverRating:    p.parseRating(parts[8]),
		CarName:         parts[9],
		CarModel:        parts[10],
		Platform:        parts[11],
		PickupMeters:    pickupM,
		PickupSeconds:   pickupS,
		UserID:          parts[14],
		PriceStart:      priceStart,
		PriceBid:        priceBid,
		Status:          status,
		IsDone:          status == "done",
	}, nil
}

func (p *Parser) parseRating(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultDriverRating
	}
	if p.decimalSeparator != '.' {
		s = strings.ReplaceAll(s, string(p.decimalSeparator), ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return defaultDriverRating
	}
	return v
}

func parseTimestamp(field, s string) (time.Time, error) {
	ts, ok := tryTimestamp(s)
	if !ok {
		return time.Time{}, &ParseError{Field: field, Reason: fmt.Sprintf("unrecognized timestamp %q", s)}
	}
	return ts, nil
}

func tryTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func parseNonNegative(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ParseError{Field: field, Reason: err.Error()}
	}
	if math.IsInf(v, 0) || math.IsNaN(v) || v < 0 {
		return 0, &ParseError{Field: field, Reason: fmt.Sprintf("value %v out of range", v)}
	}
	return v, nil
}
