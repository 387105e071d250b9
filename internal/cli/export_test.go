package cli

// Export internal helpers for tests.
var (
	DeriveOutputPath = deriveOutputPath
	ReadDocument     = readDocument
	WriteFileAtomic  = writeFileAtomic
)
