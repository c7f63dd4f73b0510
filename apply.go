package partial

// Apply returns a copy of v with unselected properties removed. Maps and
// slices are rebuilt; scalar leaves are shared with the input, which is
// never modified. Hosts that own their encoder (or want YAML output) can
// serialize the result directly instead of calling Marshal.
func (f *Filter) Apply(v any) any {
	if f.Pass() {
		return v
	}
	return f.apply(v, nil)
}

func (f *Filter) apply(v any, path []PathSegment) any {
	switch v := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			kpath := append(path, Field(k))
			if !f.sel.Matches(kpath, f.ignoreCase) {
				continue
			}
			m[k] = f.apply(val, kpath)
		}
		return m
	case []any:
		vs := make([]any, len(v))
		for i, val := range v {
			vs[i] = f.apply(val, append(path, Element(i)))
		}
		return vs
	default:
		return v
	}
}
