// Package web embeds the dashboard assets served by the API server.
package web

import "embed"

// StaticFS embeds the dashboard (html/js/css).
//
//go:embed static/*
var StaticFS embed.FS
