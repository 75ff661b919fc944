// Package assets provides the stylesheets used when a conversion does not
// supply its own CSS.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in styles ("default", "plain") compiled
// into the binary. FilesystemLoader reads {basePath}/styles/{name}.css with
// path traversal protection and symlink resolution. AssetResolver tries the
// custom directory first and falls back to the embedded styles when a name
// is not found there.
//
// # Security
//
// Style names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
