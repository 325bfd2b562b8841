package models

// ImportResult aggregates one import call. Skips are informational, they are
// not failures.
type ImportResult struct {
	Imported          int `json:"imported"`
	SkippedNoLocation int `json:"skipped_no_location"`
	SkippedDuplicate  int `json:"skipped_duplicate"`
}

type ImportRequest struct {
	Items []PhotoMetadata `json:"items" validate:"required,min=1"`
}

// DeleteRecordsRequest deletes by position against the most recent listing.
// An empty index list means delete everything.
type DeleteRecordsRequest struct {
	Indices []int `json:"indices"`
}

type TokenRequest struct {
	Username string `json:"username" validate:"required,username"`
}

type TokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type PublishResponse struct {
	Published int `json:"published"`
}

// ReconcileSnapshot compares local cardinality against the private mirror and
// the shared public store.
type ReconcileSnapshot struct {
	Local   int64 `json:"local"`
	Private int   `json:"private"`
	Public  int   `json:"public"`
}
