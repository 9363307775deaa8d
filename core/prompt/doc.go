// Package prompt asks the user for confirmation before destructive CLI actions.
package prompt
