// Package config loads and merges empath configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (EMPATH_PROVIDER, EMPATH_MODEL, EMPATH_PERSONA, etc.)
//  3. Config file ($XDG_CONFIG_HOME/empath/config.yaml)
//  4. Built-in defaults
//
// Use [Init] once at startup to wire viper to the file, env prefix, and
// defaults, [Load] to obtain the merged [Config], and [WriteDefault] to
// write a starter config file.
package config
