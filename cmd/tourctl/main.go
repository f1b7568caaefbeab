package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/docopt/docopt-go"

	"touristplaces/internal/tourClient"
)

func main() {
	usage := `Tourist places terminal client.

Usage:
  tourctl cities [--url=<url>]
  tourctl itinerary <city> [--days=<n>] [--url=<url>]
  tourctl forecast <city> [--horizon=<n>] [--url=<url>]
  tourctl compare <cities>... [--url=<url>]
  tourctl -h | --help

Options:
  -h --help          Show this screen.
  --url=<url>        Server base URL [default: http://localhost:8888].
  --days=<n>         Days to plan [default: 3].
  --horizon=<n>      Months to forecast [default: 6].
`

	arguments, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatalf("Error parsing arguments: %v", err)
	}
	baseURL, _ := arguments.String("--url")
	client := tourClient.New(baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var out string
	switch {
	case arguments["cities"] == true:
		cities, err := client.Cities(ctx)
		if err != nil {
			log.Fatalf("Error listing cities: %v", err)
		}
		out = tourClient.RenderCities(cities)
	case arguments["itinerary"] == true:
		city, _ := arguments.String("<city>")
		days, err := arguments.Int("--days")
		if err != nil {
			log.Fatalf("Error parsing --days: %v", err)
		}
		it, err := client.Itinerary(ctx, city, days)
		if err != nil {
			log.Fatalf("Error planning itinerary: %v", err)
		}
		out = tourClient.RenderItinerary(it)
	case arguments["forecast"] == true:
		city, _ := arguments.String("<city>")
		horizon, err := arguments.Int("--horizon")
		if err != nil {
			log.Fatalf("Error parsing --horizon: %v", err)
		}
		f, err := client.Forecast(ctx, city, horizon)
		if err != nil {
			log.Fatalf("Error forecasting visitors: %v", err)
		}
		out = tourClient.RenderForecast(f)
	case arguments["compare"] == true:
		cities, _ := arguments["<cities>"].([]string)
		cmp, err := client.Compare(ctx, cities)
		if err != nil {
			log.Fatalf("Error comparing cities: %v", err)
		}
		out = tourClient.RenderComparison(cmp)
	}
	fmt.Println(out)
}
