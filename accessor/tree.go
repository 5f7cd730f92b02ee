package accessor

// copyTree deep copies the containers of a raw value tree.
func copyTree(v any) any {
	switch t := v.(type) {
	case []any:
		return cloneList(t)
	case map[string]any:
		return cloneMap(t)
	default:
		return v
	}
}
