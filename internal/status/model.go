package status

import "time"

// Data contains all the information to display in status
type Data struct {
	// Header
	Version string

	// Configuration
	ConfigPath    string
	Command       string
	Commands      []string
	IncludeHidden bool
	Highlighter   string

	// Resolved optimizer
	BinaryPath string

	// Cache
	CacheEnabled  bool
	CachePath     string
	CacheFileSize int64
	Entries       []EntryInfo
}

// EntryInfo summarizes one cached parse result
type EntryInfo struct {
	Binary       string
	Options      int
	PassOptions  int
	LastAccessed time.Time
}
