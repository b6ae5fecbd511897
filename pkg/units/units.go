package units

// CelsiusToFahrenheit converts c to degrees Fahrenheit. A nil input stays nil.
func CelsiusToFahrenheit(c *float64) *float64 {
	if c == nil {
		return nil
	}
	f := *c*9/5 + 32
	return &f
}

// MillimetersToInches converts mm to inches. A nil input stays nil.
func MillimetersToInches(mm *float64) *float64 {
	if mm == nil {
		return nil
	}
	in := *mm / 25.4
	return &in
}
