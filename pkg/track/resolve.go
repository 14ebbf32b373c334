package track

// Resolution maps each content type to the type actually placed for it. A
// type whose resource is missing resolves to [Obstacle]; every other type
// resolves to itself. It is computed once per run.
type Resolution map[ContentType]ContentType

// Resolve builds the fallback table for r and returns the types that had to
// fall back, in declaration order.
func Resolve(r Resources) (Resolution, []ContentType) {
	res := make(Resolution, len(ContentTypes))
	var missing []ContentType
	for _, t := range ContentTypes {
		if r.Has(t) {
			res[t] = t
			continue
		}
		res[t] = Obstacle
		missing = append(missing, t)
	}
	return res, missing
}

// Lookup returns the type to place for t.
func (r Resolution) Lookup(t ContentType) ContentType {
	if v, ok := r[t]; ok {
		return v
	}
	return Obstacle
}
