// Package journal records test-environment runs in a SQLite database under
// the working directory. Each prepared environment gets a run row with a
// unique ID, timestamps and a final status, queryable through the history
// command and prunable by age.
package journal
