package spotifysearch

import "encoding/json"

// searchResponse mirrors the relevant part of the Spotify Web API album
// search response. Items stay raw so the chosen hit can be stored verbatim.
type searchResponse struct {
	Albums struct {
		Items []json.RawMessage `json:"items"`
	} `json:"albums"`
}

// album is the subset of the album object the search needs.
type album struct {
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Images []struct {
		URL    string `json:"url"`
		Height int    `json:"height"`
		Width  int    `json:"width"`
	} `json:"images"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}
