// README: Historical ride record as exported from the marketplace (18 semicolon-separated columns).
package dataset

import "time"

// Record is one parsed historical ride. Column order follows the
// export schema: car name is column 9, car model is column 10.
type Record struct {
	OrderID         string
	OrderTimestamp  time.Time
	DistanceMeters  float64
	DurationSeconds float64
	TenderID        string
	TenderTimestamp time.Time
	DriverID        string
	DriverRegDate   time.Time
	DriverRating    float64
	CarName         string
	CarModel        string
	Platform        string
	PickupMeters    float64
	PickupSeconds   float64
	UserID          string
	PriceStart      float64
	PriceBid        float64
	Status          string
	IsDone          bool
}
