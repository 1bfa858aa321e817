package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/quicken/internal/version.Version=...
	Commit  = "unknown" // -X github.com/arthur-debert/quicken/internal/version.Commit=...
	Date    = "unknown" // -X github.com/arthur-debert/quicken/internal/version.Date=...
)
