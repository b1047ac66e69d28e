// Package investments stores named holdings with the date they were made.
package investments
