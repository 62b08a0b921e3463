package sweep

// Result reports what a sweep actually removed. A repeated sweep with nothing
// new to clean reports zeros.
type Result struct {
	SessionsScanned  int `json:"sessionsScanned"`
	SessionsDeleted  int `json:"sessionsDeleted"`
	RecordsDeleted   int `json:"recordsDeleted"`
	SessionsRetained int `json:"sessionsRetained"`
	OrphansFlagged   int `json:"orphansFlagged"`
}
