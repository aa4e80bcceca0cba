// pkg/model/files.go
package model

// Well-known file names, all resolved relative to the job's base
// working directory.
const (
	// ValueMappingFile is the optional value translation table
	ValueMappingFile = "ValueMapping.csv"

	// IssueReportFile collects every issue found during a run
	IssueReportFile = "MigrationIssues.csv"

	// UserFile and GroupFile are the two related exports folded into
	// MergedUserFile before validation
	UserFile       = "User.csv"
	GroupFile      = "Group.csv"
	MergedUserFile = "UserAndGroup.csv"
)
