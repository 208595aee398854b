// Package greet implements the frontend's connectivity check command.
package greet

import "fmt"

// Greet returns the greeting shown by the frontend after a round trip.
func Greet(name string) string {
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", name)
}
