package models

import "strconv"

const unknownCodePlaceholder = "—"

// WMO weather interpretation codes as reported by Open-Meteo.
var weatherCodeDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow",
	73: "Moderate snow",
	75: "Heavy snow",
	80: "Rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	95: "Thunderstorm",
	96: "Thunderstorm w/ slight hail",
	99: "Thunderstorm w/ heavy hail",
}

// DescribeCode returns a human description for a weather code. Unknown codes
// come back as "Code <n>" and a nil code as an em-dash.
func DescribeCode(code *int) string {
	if code == nil {
		return unknownCodePlaceholder
	}
	if desc, ok := weatherCodeDescriptions[*code]; ok {
		return desc
	}
	return "Code " + strconv.Itoa(*code)
}
