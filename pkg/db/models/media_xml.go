package models

import "encoding/xml"

// MediaXML is the XML projection served when a client asks for application/xml.
type MediaXML struct {
	XMLName        xml.Name      `xml:"media"`
	ID             uint          `xml:"id,attr"`
	Type           string        `xml:"type,attr"`
	Title          string        `xml:"title"`
	Description    string        `xml:"description,omitempty"`
	Duration       string        `xml:"duration"`
	ReleaseDate    string        `xml:"releaseDate"`
	Classification string        `xml:"classification"`
	SeasonID       *uint         `xml:"seasonId,omitempty"`
	EpisodeNumber  *int          `xml:"episodeNumber,omitempty"`
	Genres         []string      `xml:"genres>genre,omitempty"`
	Subtitles      []SubtitleXML `xml:"subtitles>subtitle,omitempty"`
}

type SubtitleXML struct {
	Language string `xml:"lang,attr"`
	FilePath string `xml:",chardata"`
}

// ToXML builds the XML projection of m.
func (m Media) ToXML() MediaXML {
	out := MediaXML{
		ID:             m.ID,
		Type:           m.Type.String(),
		Title:          m.Title,
		Description:    m.Description,
		Duration:       m.Duration,
		ReleaseDate:    m.ReleaseDate.Format("2006-01-02"),
		Classification: m.Classification.String(),
		SeasonID:       m.SeasonID,
		EpisodeNumber:  m.EpisodeNumber,
	}
	for _, g := range m.Genres {
		out.Genres = append(out.Genres, g.Name)
	}
	for _, s := range m.Subtitles {
		out.Subtitles = append(out.Subtitles, SubtitleXML{Language: s.Language, FilePath: s.FilePath})
	}
	return out
}
