package common

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"

	UntitledEntry = "Untitled Entry"
	NotAvailable  = "N/A"

	DefaultJournalDir = "data/journal_1"
	DefaultOutputFile = "data/journal_entries.csv"
	DefaultDBPath     = "data/journal_mood.db"
	DefaultConfigPath = "configs/config.yaml"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
