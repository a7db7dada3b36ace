// Package jellyfin creates practice playlists on a Jellyfin server.
//
// The client matches recommended songs against the server's audio library by
// artist and title, then creates a playlist from the matches. All calls go
// through an injectable HTTP doer so tests never need a live server.
package jellyfin
