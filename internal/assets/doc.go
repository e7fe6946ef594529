// Package assets provides the stylesheet and HTML templates used to render
// handbook pages. Assets can be loaded from embedded files or a custom
// directory on disk.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in style)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the builder. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset is
// not found there, so a site can override the stylesheet and keep the
// default templates (or the reverse).
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # page stylesheet
//	└── templates/
//	    └── {name}/
//	        ├── page.html        # one site page
//	        └── print.html       # every article in one document (PDF)
//
// Syntax highlighting CSS is not stored as an asset: HighlightCSS renders it
// from a Chroma style at build time.
//
// # Security
//
// Asset names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
