package tasks

import "path/filepath"

// Paths enumerates every input and output location used by the handlers.
type Paths struct {
	DataDir string

	FormatFile string

	DatesFile     string
	WednesdaysOut string

	ContactsFile string
	ContactsOut  string

	LogsDir string
	LogsOut string

	DocsDir   string
	DocsIndex string

	EmailFile      string
	EmailSenderOut string

	TicketsDB  string
	TicketsOut string
}

// NewPaths lays out the fixed file names under dataDir.
func NewPaths(dataDir string) Paths {
	at := func(name ...string) string {
		return filepath.Join(append([]string{dataDir}, name...)...)
	}

	return Paths{
		DataDir:        dataDir,
		FormatFile:     at("format.md"),
		DatesFile:      at("dates.txt"),
		WednesdaysOut:  at("dates-wednesdays.txt"),
		ContactsFile:   at("contacts.json"),
		ContactsOut:    at("contacts-sorted.json"),
		LogsDir:        at("logs"),
		LogsOut:        at("logs-recent.txt"),
		DocsDir:        at("docs"),
		DocsIndex:      at("docs", "index.json"),
		EmailFile:      at("email.txt"),
		EmailSenderOut: at("email-sender.txt"),
		TicketsDB:      at("ticket-sales.db"),
		TicketsOut:     at("ticket-sales-gold.txt"),
	}
}

func baseName(path string) string {
	return filepath.Base(path)
}
