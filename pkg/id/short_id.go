package id

import "github.com/teris-io/shortid"

// ShortId generates a short url-safe id, used for generated passwords.
func ShortId() string {
	v, err := shortid.Generate()
	if err != nil {
		return ""
	}
	return v
}
