// Package goals stores savings goals per account in the goal table.
package goals
