package models

// CurrentConditions is the normalized "right now" reading. Every numeric
// field is nil when the upstream omitted it.
type CurrentConditions struct {
	TemperatureC    *float64 `json:"temperature_c" example:"21.4"`
	TemperatureF    *float64 `json:"temperature_f" example:"70.52"`
	ApparentC       *float64 `json:"apparent_c" example:"20.9"`
	ApparentF       *float64 `json:"apparent_f" example:"69.62"`
	WindSpeedMS     *float64 `json:"wind_speed_m_s" example:"3.2"`
	PrecipitationMM *float64 `json:"precipitation_mm" example:"0"`
	WeatherCode     *int     `json:"weather_code" example:"2"`
	WeatherDesc     string   `json:"weather_desc" example:"Partly cloudy"`
}

// DailyRecord has the same shape whether it came from the archive or the
// forecast feed, which is what lets range halves be concatenated.
type DailyRecord struct {
	Date        string   `json:"date" example:"2025-07-25"`
	TmaxC       *float64 `json:"tmax_c" example:"23.1"`
	TmaxF       *float64 `json:"tmax_f" example:"73.58"`
	TminC       *float64 `json:"tmin_c" example:"12.4"`
	TminF       *float64 `json:"tmin_f" example:"54.32"`
	PrecipMM    *float64 `json:"precip_mm" example:"3.2"`
	PrecipIn    *float64 `json:"precip_in" example:"0.126"`
	WeatherCode *int     `json:"weather_code" example:"63"`
	WeatherDesc string   `json:"weather_desc" example:"Moderate rain"`
}

// DailySeries is ordered by ascending Date.
type DailySeries []DailyRecord

// Truncate returns at most n leading records.
func (s DailySeries) Truncate(n int) DailySeries {
	if n < 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

func (s DailySeries) Dates() []string {
	dates := make([]string, 0, len(s))
	for _, r := range s {
		dates = append(dates, r.Date)
	}
	return dates
}
