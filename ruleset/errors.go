package ruleset

import "errors"

var (
	// ErrInvalidJSON indicates the document is not well-formed JSON.
	ErrInvalidJSON = errors.New("invalid JSON rule document")
	// ErrInvalidTOML indicates the document is not well-formed TOML.
	ErrInvalidTOML = errors.New("invalid TOML rule document")
	// ErrInvalidConfig indicates a structurally valid document with bad
	// rule contents.
	ErrInvalidConfig = errors.New("invalid rule config")
	// ErrUnknownFormat indicates an unsupported rule file extension.
	ErrUnknownFormat = errors.New("unknown rule file format")
	// ErrNoEngine indicates a rule carries an activation chunk but no
	// script engine was supplied.
	ErrNoEngine = errors.New("rule has on_activate but no script engine")
)
