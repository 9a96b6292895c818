package params

// Merge flattens GET and POST parameter sets into one value per field.
// For every field the first non-empty GET value wins, then the first
// non-empty POST value. Fields empty in both are omitted.
func Merge(get, post map[string][]string) map[string]string {
	out := make(map[string]string, len(get)+len(post))
	for _, src := range []map[string][]string{post, get} {
		for k, vs := range src {
			if v := firstNonEmpty(vs); v != "" {
				out[k] = v
			}
		}
	}
	return out
}

func firstNonEmpty(vs []string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
