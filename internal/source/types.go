package source

type (
	// FileID uniquely identifies a text within a FileSet.
	FileID uint32
	// FileFlags records what happened to a text while it was loaded.
	FileFlags uint8
)

const (
	// FileVirtual marks text added from memory (stdin, editor buffer, test).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileNormalizedNFC marks text recomposed to NFC, so č typed as c + caron
	// is seen as a single letter by the checkers.
	FileNormalizedNFC
)

// File captures metadata and content for a single checked text.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a text.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
