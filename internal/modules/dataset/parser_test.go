package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validLine = "O1;2024-01-15 08:30:00;5000;600;T1;2024-01-15 08:25:00;D1;2023-01-01 00:00:00;4,8;Sedan;Toyota;android;300;60;U1;100;120;done"

func TestParseLineValidRow(t *testing.T) {
	rec, err := NewParser(',').ParseLine(validLine)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}

	if rec.OrderID != "O1" {
		t.Errorf("OrderID = %q, want O1", rec.OrderID)
	}
	if rec.DistanceMeters != 5000 {
		t.Errorf("DistanceMeters = %v, want 5000", rec.DistanceMeters)
	}
	if rec.DurationSeconds != 600 {
		t.Errorf("DurationSeconds = %v, want 600", rec.DurationSeconds)
	}
	if rec.DriverRating != 4.8 {
		t.Errorf("DriverRating = %v, want 4.8", rec.DriverRating)
	}
	if rec.CarName != "Sedan" || rec.CarModel != "Toyota" {
		t.Errorf("CarName/CarModel = %q/%q, want Sedan/Toyota", rec.CarName, rec.CarModel)
	}
	if rec.Platform != "android" {
		t.Errorf("Platform = %q, want android", rec.Platform)
	}
	if rec.PriceStart != 100 || rec.PriceBid != 120 {
		t.Errorf("PriceStart/PriceBid = %v/%v, want 100/120", rec.PriceStart, rec.PriceBid)
	}
	if !rec.IsDone {
		t.Error("IsDone = false, want true")
	}

	want := time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)
	if !rec.OrderTimestamp.Equal(want) {
		t.Errorf("OrderTimestamp = %v, want %v", rec.OrderTimestamp, want)
	}
}

func TestParseLineTimestampLayouts(t *testing.T) {
	cases := []struct {
		name string
		ts   string
		want time.Time
	}{
		{"iso with zone", "2024-03-02T10:15:00Z", time.Date(2024, 3, 2, 10, 15, 0, 0, time.UTC)},
		{"iso without zone", "2024-03-02T10:15:00", time.Date(2024, 3, 2, 10, 15, 0, 0, time.UTC)},
		{"space separated", "2024-03-02 10:15:00", time.Date(2024, 3, 2, 10, 15, 0, 0, time.UTC)},
		{"dotted day first", "02.03.2024 10:15", time.Date(2024, 3, 2, 10, 15, 0, 0, time.UTC)},
	}
	p := NewParser(',')
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := "O1;" + tc.ts + ";5000;600;T1;;D1;2023-01-01 00:00:00;4,8;Sedan;Toyota;android;300;60;U1;100;120;done"
			rec, err := p.ParseLine(line)
			if err != nil {
				t.Fatalf("ParseLine: %v", err)
			}
			if !rec.OrderTimestamp.Equal(tc.want) {
				t.Errorf("OrderTimestamp = %v, want %v", rec.OrderTimestamp, tc.want)
			}
		})
	}
}

func TestParseLineRejectsRows(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"too few fields", "O1;2024-01-15 08:30:00;5000"},
		{"unparsable order timestamp", "O1;yesterday;5000;600;T1;;D1;2023-01-01 00:00:00;4,8;Sedan;Toyota;android;300;60;U1;100;120;done"},
		{"unparsable reg date", "O1;2024-01-15 08:30:00;5000;600;T1;;D1;January;4,8;Sedan;Toyota;android;300;60;U1;100;120;done"},
		{"negative distance", "O1;2024-01-15 08:30:00;-5;600;T1;;D1;2023-01-01 00:00:00;4,8;Sedan;Toyota;android;300;60;U1;100;120;done"},
		{"non-numeric price", "O1;2024-01-15 08:30:00;5000;600;T1;;D1;2023-01-01 00:00:00;4,8;Sedan;Toyota;android;300;60;U1;cheap;120;done"},
	}
	p := NewParser(',')
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := p.ParseLine(tc.line); err == nil {
				t.Fatal("expected error, got nil")
			} else if !IsParseError(err) {
				t.Fatalf("expected ParseError, got %T", err)
			}
		})
	}
}

func TestParseLineRatingDefaults(t *testing.T) {
	cases := []struct {
		name   string
		rating string
		want   float64
	}{
		{"comma decimal", "4,8", 4.8},
		{"plain integer", "5", 5},
		{"empty", "", 5.0},
		{"garbage", "n/a", 5.0},
	}
	p := NewParser(',')
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := "O1;2024-01-15 08:30:00;5000;600;T1;;D1;2023-01-01 00:00:00;" + tc.rating + ";Sedan;Toyota;android;300;60;U1;100;120;done"
			rec, err := p.ParseLine(line)
			if err != nil {
				t.Fatalf("ParseLine: %v", err)
			}
			if rec.DriverRating != tc.want {
				t.Errorf("DriverRating = %v, want %v", rec.DriverRating, tc.want)
			}
		})
	}
}

func TestParseLineStatusNormalization(t *testing.T) {
	line := "O1;2024-01-15 08:30:00;5000;600;T1;;D1;2023-01-01 00:00:00;4,8;Sedan;Toyota;android;300;60;U1;100;120;  DONE  "
	rec, err := NewParser(',').ParseLine(line)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if rec.Status != "done" || !rec.IsDone {
		t.Errorf("Status = %q IsDone = %v, want done/true", rec.Status, rec.IsDone)
	}
}

func TestParseLineEmptyRegDateTolerated(t *testing.T) {
	line := "O1;2024-01-15 08:30:00;5000;600;T1;;D1;;4,8;Sedan;Toyota;android;300;60;U1;100;120;done"
	rec, err := NewParser(',').ParseLine(line)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if !rec.DriverRegDate.IsZero() {
		t.Errorf("DriverRegDate = %v, want zero", rec.DriverRegDate)
	}
}

func TestReadFileSkipsHeaderAndBadRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rides.csv")
	content := "order_id;order_timestamp;distance;duration;tender_id;tender_ts;driver_id;reg_date;rating;car_name;car_model;platform;pickup_m;pickup_s;user_id;price_start;price_bid;status\n" +
		validLine + "\n" +
		"\n" +
		"broken;row\n" +
		validLine + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	records, stats, err := NewParser(',').ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if stats.Parsed != 2 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want Parsed=2 Skipped=1", stats)
	}
}

func TestReadFileMissingFile(t *testing.T) {
	if _, _, err := NewParser(',').ReadFile("/nonexistent/rides.csv"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
