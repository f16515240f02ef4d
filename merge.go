package frontend

// MergeConfigs merges sources left to right. Nested objects present on both
// sides merge key by key; any other value replaces what came before, an
// Undefined value included. Inputs are never mutated and the result shares
// no nested objects with them.
func MergeConfigs(sources ...Object) Object {
	out := Object{}
	for _, source := range sources {
		for key, override := range source {
			option, optionIsObj := out[key].Obj()
			next, overrideIsObj := override.Obj()
			if optionIsObj && overrideIsObj {
				out[key] = ObjectValue(MergeConfigs(option, next))
				continue
			}
			out[key] = override.clone()
		}
	}
	return out
}
