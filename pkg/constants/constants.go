package constants

// CLIName is the name used in user-facing output to refer to the command
const CLIName = "gh-tidy-annotate"

// DefaultConfigFile is the config file picked up from the working directory when --config is not given
const DefaultConfigFile = ".tidy-annotate.yml"
