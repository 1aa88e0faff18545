package model

// Path represents a file system path.
type Path string

// OperatorEntry is one signature in a registry document.
type OperatorEntry struct {
	Signature string `yaml:"signature"`
}

// Registry is a decoded registry document: a versioned list of operator
// signatures to audit.
type Registry struct {
	Version   int             `yaml:"version"`
	Operators []OperatorEntry `yaml:"operators"`
}
