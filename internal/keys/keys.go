package keys

// Counter returns the backend key holding the call counter of an operation.
// It is the identity itself so external readers can GET it by name.
func Counter(identity string) string { return identity }

// Inputs returns the list key holding recorded call inputs.
func Inputs(identity string) string { return identity + ":inputs" }

// Outputs returns the list key holding recorded call outputs.
func Outputs(identity string) string { return identity + ":outputs" }

// History returns the (inputs, outputs) list keys of an operation.
func History(identity string) (string, string) {
	return Inputs(identity), Outputs(identity)
}
