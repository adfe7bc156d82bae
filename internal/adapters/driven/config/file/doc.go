// Package file provides file-based implementations of driven port interfaces.
//
// ConfigStore keeps application settings in ~/.estatemap/config.toml. Keys
// are addressed in dot notation ("backend.mode") and written back as nested
// TOML tables.
package file
