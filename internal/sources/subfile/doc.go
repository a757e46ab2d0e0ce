// Package subfile implements the subtitle-file source: it downloads WebVTT
// subtitle files with the external downloader, prefers manually-authored
// tracks over auto-generated variants via a fixed suffix priority, parses
// the cues into segments, and sweeps its id-scoped temp files afterwards.
package subfile
