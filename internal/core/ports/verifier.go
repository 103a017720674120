package ports

// Verifier checks that the renderer wrote the files it was asked to write.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type Verifier interface {
	// MissingOutputs returns the subset of paths that do not exist.
	MissingOutputs(paths []string) ([]string, error)
}
