package agent

import "strings"

// RequestType is the routing decision for an inbound coordinator request.
type RequestType string

const (
	// RouteMovie routes to the movie agent only. This is the default: a
	// request with no keyword hits at all is still a movie request.
	RouteMovie RequestType = "movie"
	// RouteQuotes routes to the quotes agent only.
	RouteQuotes RequestType = "quotes"
	// RouteBoth fans out to both agents sequentially.
	RouteBoth RequestType = "both"
)

var (
	quoteKeywords = []string{
		"quote",
		"quotes",
		"say",
		"said",
		"line",
		"lines",
		"memorable",
		"famous quotes",
	}
	movieKeywords = []string{
		"movie",
		"film",
		"plot",
		"actor",
		"director",
		"cast",
		"about",
		"tell me about",
	}
	bothKeywords = []string{
		"and quote",
		"and quotes",
		"with quotes",
		"plus quotes",
	}
)

// Classify maps free text to a routing decision. Total by construction:
// explicit both-keywords or a quote and a movie keyword together mean both,
// a quote keyword alone means quotes, everything else means movie.
func Classify(text string) RequestType {
	lower := strings.ToLower(text)

	hasQuote := containsAny(lower, quoteKeywords)
	hasMovie := containsAny(lower, movieKeywords)
	hasBoth := containsAny(lower, bothKeywords)

	switch {
	case hasBoth || (hasQuote && hasMovie):
		return RouteBoth
	case hasQuote:
		return RouteQuotes
	default:
		return RouteMovie
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
