// README: Price-ratio step table used only when no model is loaded and fallback is enabled.
package prediction

// heuristicAcceptance approximates the probability that a party
// accepts a proposed price, given the price they stated themselves.
// The steps mirror observed acceptance behavior: generous discounts
// are near-certain, a 30%+ overprice is near-hopeless.
func heuristicAcceptance(proposed, stated float64) float64 {
	if stated <= 0 {
		return 0.5
	}
	ratio := proposed / stated
	switch {
	case ratio <= 0.7:
		return 0.95
	case ratio <= 0.9:
		return 0.85
	case ratio <= 1.0:
		return 0.75
	case ratio <= 1.1:
		return 0.50
	case ratio <= 1.3:
		return 0.25
	default:
		return 0.10
	}
}
