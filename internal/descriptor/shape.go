package descriptor

// ContainerInfo describes a recognized container type reference.
type ContainerInfo struct {
	Shape ContainerShape
	// Params holds the element ref (list/set) or key and value refs (map).
	Params []TypeRef
}

// AnalyzeShape reports whether ref is one of the three recognized container
// shapes and, if so, extracts its element (or key/value) type references.
// Non-container refs return ok == false; that is not an error.
func AnalyzeShape(ref TypeRef) (ContainerInfo, bool) {
	if !ref.IsContainer() {
		return ContainerInfo{}, false
	}

	if len(ref.Params) != ref.Shape.paramCount() {
		return ContainerInfo{}, false
	}

	return ContainerInfo{Shape: ref.Shape, Params: ref.Params}, true
}
