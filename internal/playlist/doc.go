// Package playlist enumerates the videos of configured playlists through
// the external downloader's flat listing mode, which resolves the entry
// list without touching each video.
package playlist
