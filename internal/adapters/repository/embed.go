package repository

import _ "embed"

// embeddedDataset is the fixture shipped with the binary.
//
//go:embed fixtures/dataset.yaml
var embeddedDataset []byte

// EmbeddedDataset returns a copy of the embedded fixture document.
func EmbeddedDataset() []byte {
	return append([]byte(nil), embeddedDataset...)
}
