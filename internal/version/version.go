package version

// Version is stamped at release time (overridable with
// -ldflags "-X seedloc/internal/version.Version=...").
var Version = "0.2.0"
