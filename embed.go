package mdblog

import "embed"

// EmbeddedAssets contains static assets shipped with the framework:
// editor.js, the script behind the writing page.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
