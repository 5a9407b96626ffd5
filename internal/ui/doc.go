// Package ui provides the styled, non-interactive output used by the
// one-shot zbdtop commands (zones, info). The live dashboard has its own
// styles in the monitor package.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Healthy values
//	ColorError     (red)    - Offline or read-only zones
//	ColorWarning   (yellow) - Values at a device limit
//	ColorInfo      (cyan)   - Informational values
//	ColorMuted     (gray)   - Secondary text and table borders
//	ColorSecondary (blue)   - Section titles
//
// # Tables
//
// RenderSimpleTable renders a bubbles table without focus or styling for
// selection, which is what zone listings print. RenderKeyValues renders a
// titled list of labeled values with an optional status marker per line:
//
//	Device
//	  ● model           host-managed
//	  ✗ offline zones   2
package ui
