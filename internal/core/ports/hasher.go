package ports

// Hasher computes content fingerprints for reporting.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint returns a short, stable digest of content.
	Fingerprint(content []byte) string
}
