// pkg/model/issue.go
package model

import "time"

// Issue records a single validation or repair problem found in a task's
// CSV data. Structural issues (missing columns, malformed rows) and
// content issues (unresolved lookups, unmapped values) share this shape
// and are distinguished only by when they were discovered.
type Issue struct {
	Date         time.Time // When the problem was discovered
	ChildValue   string    // Offending value in the child record
	ChildObject  string    // Object the child record belongs to
	ChildField   string    // Field the value was found in
	ParentValue  string    // Value the lookup tried to match (if any)
	ParentObject string    // Object the lookup points at (if any)
	ParentField  string    // Field the lookup matches against (if any)
	Message      string    // Human-readable description
}

// IssueColumns is the header of the issue report file, in output order
var IssueColumns = []string{
	"Date",
	"Child value",
	"Child sObject",
	"Child field",
	"Parent value",
	"Parent sObject",
	"Parent field",
	"Error",
}

// NewIssue creates an issue for a child record problem with no parent
// context, stamped with the current time
func NewIssue(childValue, childObject, childField, message string) Issue {
	return Issue{
		Date:        time.Now(),
		ChildValue:  childValue,
		ChildObject: childObject,
		ChildField:  childField,
		Message:     message,
	}
}

// NewLookupIssue creates an issue for an unresolved cross-object lookup
func NewLookupIssue(childValue, childObject, childField, parentValue, parentObject, parentField, message string) Issue {
	issue := NewIssue(childValue, childObject, childField, message)
	issue.ParentValue = parentValue
	issue.ParentObject = parentObject
	issue.ParentField = parentField
	return issue
}

// Row converts the issue into a report row matching IssueColumns
func (i Issue) Row() *Row {
	row := NewRow()
	row.Set("Date", i.Date.Format(time.RFC3339))
	row.Set("Child value", i.ChildValue)
	row.Set("Child sObject", i.ChildObject)
	row.Set("Child field", i.ChildField)
	row.Set("Parent value", i.ParentValue)
	row.Set("Parent sObject", i.ParentObject)
	row.Set("Parent field", i.ParentField)
	row.Set("Error", i.Message)
	return row
}
