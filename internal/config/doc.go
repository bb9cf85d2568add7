// Package config provides sandboxed Lua configuration parsing for
// hostbridge.
//
// The config file is optional. When present it lets users extend the
// manifest's allowed origins, override the manifest description, and
// tune the staging area, with platform conditionals available through
// the injected read-only platform table:
//
//	hostbridge = {
//	  description = "my bridge",
//	  allowed_origins = {
//	    "chrome-extension://aaaabbbbccccddddeeeeffffgggghhhh/",
//	  },
//	  staging = {
//	    dir = platform.is_windows and "C:/bridge-staging" or nil,
//	    retention = "2h",
//	  },
//	  keyring = "~/.config/hostbridge/trusted.gpg",
//	}
//
// User Lua code runs in a restricted sandbox: no os, io, require,
// dofile, loadfile, load, or debug. String, table, and math libraries
// remain available. A config that fails to parse is reported and
// ignored; registration never depends on a valid config.
package config
