// Package file provides file-based configuration for the application.
//
// It loads a typed TOML configuration file and user-editable prompt
// override files from the config directory (default ~/.beenthere/).
// API keys are never stored in the config file; they come from the
// environment.
package file
