// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under ~/.mineguard.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage with env overrides
//   - CredentialStore: bearer token kept in the config file, reloaded on change
//   - SuggestionStore: user-editable suggested chat prompts
package file
