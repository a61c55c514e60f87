package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/heat1q/clir/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/heat1q/clir/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/heat1q/clir/internal/version.Date={{.Date}}
)
