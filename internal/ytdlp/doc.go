// Package ytdlp wraps the external media downloader binary. It is the only
// place that shells out to yt-dlp; the subtitle and speech sources and the
// playlist lister all go through this client. A missing binary is reported
// via Available rather than surfacing as a crash.
package ytdlp
