//go:build raylib

package app

import _ "github.com/atomicstack/webshell/internal/platform/raylib"
