// Package constants contains names shared across flatlint packages.
package constants

const (
	// AppName is used for XDG directory paths and log fields.
	AppName = "flatlint"

	// ConfigFilename is the configuration file looked up in the project root.
	ConfigFilename = "flatlint.yml"

	// LogFilename is the default log file name.
	LogFilename = "flatlint.log"

	// ProjectDirEnv overrides project root detection when set.
	ProjectDirEnv = "FLATLINT_PROJECT_DIR"
)

// AlternateConfigFilenames are tried, in order, when ConfigFilename is absent.
var AlternateConfigFilenames = []string{
	"flatlint.yaml",
	"flatlint.toml",
	"flatlint.json",
}
