// Package budgets stores named spending caps with an end date.
package budgets
