package tags

import "strings"

// Fixed vocabulary of category-like keywords, checked in order.
var basicTagVocabulary = []string{
	"electronics", "clothing", "books", "home", "kitchen", "sports", "beauty", "health",
	"automotive", "garden", "office", "baby", "pet", "outdoor", "indoor", "digital",
	"premium", "budget", "eco-friendly", "organic", "handmade", "vintage", "modern",
}

// ExtractBasicTags is the deterministic fallback used when the generation
// endpoint is unavailable or yields nothing usable. Pure function.
func ExtractBasicTags(name, description string) []string {
	text := strings.ToLower(name + " " + description)

	found := make([]string, 0, maxTags)
	for _, tag := range basicTagVocabulary {
		if strings.Contains(text, tag) {
			found = append(found, tag)
			if len(found) == maxTags {
				break
			}
		}
	}

	return found
}
