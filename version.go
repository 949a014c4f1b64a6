package panelctl

// Version is the current version of the panelctl library
const Version = "1.0.0"

// VersionInfo contains detailed version information
type VersionInfo struct {
	// Version is the semantic version
	Version string
	// ServiceManager is the service manager this build drives
	ServiceManager string
	// Panel is the managed application
	Panel string
}

// GetVersion returns the current version information
func GetVersion() VersionInfo {
	return VersionInfo{
		Version:        Version,
		ServiceManager: "systemd",
		Panel:          ServiceDescription,
	}
}
