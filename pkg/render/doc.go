// Package render turns order form pages into bytes.
//
// A Page describes one view of the shell (landing or order form) together
// with the navigation bar. Renderers registered in a Registry turn pages into
// HTML, JSON or any other representation; RenderOptions carries per-request
// extras such as hidden fields and the resolved theme.
package render
