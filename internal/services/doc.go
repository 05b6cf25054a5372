// Package services contains the Spotify catalog client, the pure result
// transformer, and the remote-error classifier.
//
// # Client
//
// [Client] issues authenticated GET requests against the catalog's
// search and track endpoints. It never retries and never caches; every
// non-2xx response is decoded into the API's error envelope and handed
// to the [Classifier].
//
// # Transformer
//
// [TransformArtists] and [TransformTracks] convert raw catalog records
// into the client's normalized, ranked shapes. Both are pure functions:
// ranking is a stable descending sort on popularity, so records with
// equal popularity keep their response order. Missing optional fields
// (images, preview URL, artist or album sub-objects) degrade to empty
// values or the placeholder thumbnail instead of failing.
//
// # Classifier
//
// [Classifier.Classify] maps a 401 to [KindUnauthorized] and clears the
// persisted token through its [TokenInvalidator]; every other failure
// becomes [KindRemote] with the payload message carried verbatim.
package services
