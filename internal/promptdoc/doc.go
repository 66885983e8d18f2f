// Package promptdoc turns a DocumentState into the Markdown specification
// that describes the component.
//
// Rendering is pure and deterministic: the same document always produces
// byte-identical output. Each section renderer only handles the non-empty
// case; suppression of empty sections happens once, in renderOrEmpty.
package promptdoc
