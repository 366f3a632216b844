package planner

import "strings"

// ExtractJSONObject pulls the first balanced top-level JSON object out of
// model output. Handles a leading ```json fence and surrounding prose.
// Returns "" when no balanced object is found.
func ExtractJSONObject(text string) string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return ""
	}
	if strings.HasPrefix(cleaned, "```") {
		if end := strings.LastIndex(cleaned, "```"); end > 0 {
			if nl := strings.IndexByte(cleaned, '\n'); nl >= 0 && nl < end {
				cleaned = strings.TrimSpace(cleaned[nl+1 : end])
			}
		}
	}
	start := strings.IndexByte(cleaned, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(cleaned); i++ {
		switch cleaned[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return cleaned[start : i+1]
			}
		}
	}
	return ""
}
