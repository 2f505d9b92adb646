package core

const (
	// DefaultFileName is the data file used when a DiskStore is
	// constructed without an explicit path.
	DefaultFileName = "data.db"
)
