package contract

import "time"

// ImportRequest names the CSV extract files for one snapshot import.
// Empty paths skip that table, leaving its previous contents in place.
type ImportRequest struct {
	DemandPath    string
	PlannedPath   string
	CommittedPath string
	StockPath     string
	HoursPath     string
	POPath        string
}

// Empty reports whether the request names no files at all.
func (r ImportRequest) Empty() bool {
	return r.DemandPath == "" && r.PlannedPath == "" && r.CommittedPath == "" &&
		r.StockPath == "" && r.HoursPath == "" && r.POPath == ""
}

// TableImport summarizes one table replaced during an import.
type TableImport struct {
	Table string
	Path  string
	Rows  int
}

// ImportSummary reports what an import run replaced.
type ImportSummary struct {
	Tables     []TableImport
	ImportedAt time.Time
}

// SnapshotInfo describes the current contents of one snapshot table.
type SnapshotInfo struct {
	Table      string
	Rows       int
	ImportedAt time.Time
}
