// Package templates resolves and renders the named report templates.
//
// Templates are plain text/template files looked up by name in a loader
// (an fs.FS). The default loader layers an operator supplied directory over
// the templates embedded in this package, so any default can be overridden
// file by file.
package templates
