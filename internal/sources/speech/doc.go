// Package speech implements the speech-to-text source of last resort: it
// extracts a mono WAV track with the external downloader, sends it to the
// transcription service with the video title as a context prompt, and maps
// the returned timed segments into the archive's segment shape.
package speech
