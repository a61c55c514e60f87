// Package types defines the core interfaces and data structures shared
// across clir's packages. Keeping them here avoids circular dependencies
// between the rules engine, the filesystem implementations and the UI.
package types
