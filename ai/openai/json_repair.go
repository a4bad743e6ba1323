package openai

// repairJSON fixes the common formatting slip where a small model drops the
// opening quote of an object key, e.g. `{sentiment": "positive"}`. Keys that
// are already quoted pass through untouched. The repair is best effort; a
// response that stays malformed is rejected by the caller's parser.
func repairJSON(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in)+16)

	for i := 0; i < len(in); {
		ch := in[i]
		out = append(out, ch)
		i++
		if ch != '{' && ch != ',' {
			continue
		}

		// Copy whitespace after the delimiter.
		for i < len(in) && (in[i] == ' ' || in[i] == '\n' || in[i] == '\t') {
			out = append(out, in[i])
			i++
		}

		if i >= len(in) || in[i] == '"' || !isLetter(in[i]) {
			continue
		}

		// Bare word after the delimiter. If it runs into `":` the opening
		// quote is missing; insert it and copy the word.
		start := i
		for i < len(in) && (isLetter(in[i]) || in[i] == '_') {
			i++
		}
		if i+1 < len(in) && in[i] == '"' && in[i+1] == ':' {
			out = append(out, '"')
		}
		out = append(out, in[start:i]...)
	}

	return string(out)
}
