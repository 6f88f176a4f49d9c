// README: Fare rate definition for the service area.
package pricing

// Rate holds the deterministic fare constants, in the smallest currency unit.
// The minimum fare covers every trip up to FreeKm; beyond that the whole
// distance is charged per kilometre on top of the minimum.
type Rate struct {
	MinimumFare int64
	PerKm       int64
	FreeKm      float64
	Currency    string
}

// DefaultRate matches the published fare matrix constants.
func DefaultRate() Rate {
	return Rate{
		MinimumFare: 50,
		PerKm:       20,
		FreeKm:      2,
		Currency:    "PHP",
	}
}
