package images

import "strings"

// categoryKeywords expands a cuisine or activity type into search terms
// that photo providers match well
var categoryKeywords = map[string]string{
	"italian":       "italian restaurant pasta food",
	"mexican":       "mexican restaurant tacos food",
	"american":      "american restaurant burger food",
	"japanese":      "japanese restaurant sushi food",
	"chinese":       "chinese restaurant food",
	"indian":        "indian restaurant curry food",
	"thai":          "thai restaurant food",
	"french":        "french restaurant food",
	"mediterranean": "mediterranean restaurant food",
	"seafood":       "seafood restaurant fish food",
	"steakhouse":    "steakhouse restaurant steak food",
	"contemporary":  "modern restaurant fine dining food",
	"sports":        "sports fitness activity",
	"outdoor":       "outdoor nature activity",
	"indoor":        "indoor activity entertainment",
	"entertainment": "entertainment venue activity",
	"fitness":       "fitness gym workout",
}

// BuildQuery builds the stock-photo search query for a venue. The
// category expands through the keyword table; the leading segment of the
// location key is appended for local flavor.
func BuildQuery(category, location string) string {
	base, ok := categoryKeywords[strings.ToLower(category)]
	if !ok {
		base = category + " restaurant"
	}

	if location != "" {
		if part := strings.TrimSpace(strings.SplitN(location, ",", 2)[0]); part != "" {
			return base + " " + part
		}
	}
	return base
}
