package enums

import "fmt"

// MediaType distinguishes standalone movies from series episodes.
type MediaType string

const (
	MediaTypeMovie   MediaType = "MOVIE"
	MediaTypeEpisode MediaType = "EPISODE"
)

var validMediaTypes = []MediaType{MediaTypeMovie, MediaTypeEpisode}

func AllMediaTypes() []MediaType {
	return append([]MediaType(nil), validMediaTypes...)
}

func (m MediaType) String() string {
	return string(m)
}

func (m MediaType) IsValid() bool {
	return m == MediaTypeMovie || m == MediaTypeEpisode
}

func ParseMediaType(value string) (MediaType, error) {
	for _, candidate := range validMediaTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media type %q", value)
}
