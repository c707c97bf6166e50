package cli

// Config holds the configuration for one CLI run
type Config struct {
	// Patterns is the list of package patterns to scan for annotated
	// interfaces, e.g. "./..." or "./internal/api"
	Patterns []string

	// Interfaces restricts derivation to the named interfaces.
	// Empty means every interface found.
	Interfaces []string

	// ModuleName overrides the module path resolved from go.mod
	ModuleName string

	// Dir is the working directory for package loading
	Dir string

	// Verbose enables detailed logging and a dump of every derived tree
	Verbose bool
}
