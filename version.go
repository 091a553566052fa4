package modelo

// Version is the release of the module and the modelo command. Builds may
// override it with -ldflags "-X github.com/kanzure/modelo.Version=...".
var Version = "0.1.0"
