package main

import "weather-history/internal/cli"

// @title Weather History API
// @version 1.0.0
// @description Resolve a location, fetch current, 5-day or date-range weather, and keep a browsable history of every search.

// @contact.name Weather History Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Live weather lookups
// @tag.name Searches
// @tag.description Stored search history
// @tag.name Export
// @tag.description History downloads
func main() {
	cli.Execute()
}
