// Package trace receives the step-by-step narrative of register operations
// issued through a fluent target: named sequences, steps within them, and
// each operation with its values, completion or error.
//
// Observers are notified synchronously and must not block for long. They
// never influence the operations they observe.
package trace
