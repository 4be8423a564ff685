package services

import "regexp"

// entityPatterns is the ordered heuristic list for pulling a target entity
// out of a free-text request. Patterns are data: adjust the list, not the
// matching loop. Each pattern's first capture group is the candidate.
var entityPatterns = []*regexp.Regexp{
	// 「〜社」 company suffix.
	regexp.MustCompile(`([A-Za-z0-9\p{Han}\p{Katakana}ー]+)社`),
	// 「〜向け」 "intended for".
	regexp.MustCompile(`([A-Za-z0-9\p{Han}\p{Katakana}ー]+)向け`),
	// 「〜様」 honorific.
	regexp.MustCompile(`([A-Za-z0-9\p{Han}\p{Katakana}ー]+)様`),
	// 「〜の」 possessive, weakest signal so it comes last.
	regexp.MustCompile(`([A-Za-z0-9\p{Han}\p{Katakana}ー]+)の`),
}

// asciiToken matches a latin word of 2+ letters, the last-resort guess.
var asciiToken = regexp.MustCompile(`[A-Za-z]{2,}`)

// InferTargetEntity extracts the most likely target company or audience
// from a user request. It returns "" when nothing matches; callers supply
// their own generic fallback.
func InferTargetEntity(request string) string {
	if request == "" {
		return ""
	}
	for _, pattern := range entityPatterns {
		if m := pattern.FindStringSubmatch(request); m != nil {
			return m[1]
		}
	}
	if token := asciiToken.FindString(request); token != "" {
		return token
	}
	return ""
}
