package config

// Version is the pathfinder binary version.
// Set at build time via: -ldflags "-X github.com/pathfinderhq/pathfinder/internal/config.Version=<tag>"
var Version = "dev"
