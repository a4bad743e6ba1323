package core

import (
	"fmt"
	"strings"
)

// Country is an ingestion partition: a region whose top stories are fetched
// in a given language. Each partition is processed independently within one
// pipeline iteration.
type Country struct {
	// Region is the ISO 3166-1 alpha-2 code, upper-case.
	Region string
	// Language is the language tag the feed is requested in.
	Language string
}

// Predefined partitions matching the supported Google News editions.
var (
	USA     = Country{Region: "US", Language: "en"}
	UK      = Country{Region: "GB", Language: "en"}
	Italy   = Country{Region: "IT", Language: "it"}
	Germany = Country{Region: "DE", Language: "de"}
	France  = Country{Region: "FR", Language: "fr"}
	Spain   = Country{Region: "ES", Language: "es"}
)

// Countries lists all predefined partitions.
var Countries = []Country{USA, UK, Italy, Germany, France, Spain}

func (c Country) String() string {
	return c.Region
}

// CountryFromRegion resolves a region code to a predefined Country.
// Matching is case-insensitive.
func CountryFromRegion(region string) (Country, error) {
	region = strings.ToUpper(strings.TrimSpace(region))
	for _, c := range Countries {
		if c.Region == region {
			return c, nil
		}
	}
	return Country{}, fmt.Errorf("%w: %q", ErrUnknownCountry, region)
}
