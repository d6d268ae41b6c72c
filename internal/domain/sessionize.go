package domain

import "context"

// SpeakerFetcher fetches speaker data from Sessionize (or a test double).
type SpeakerFetcher interface {
	Fetch(ctx context.Context, sessionizeID string) (SessionizeAllResponse, error)
}

// SessionizeAllResponse is the subset of the Sessionize "All" view used to import speakers.
type SessionizeAllResponse struct {
	Sessions []SessionizeSession `json:"sessions"`
	Speakers []SessionizeSpeaker `json:"speakers"`
}

// SessionizeSession is a session in the Sessionize All response.
type SessionizeSession struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Speakers    []string `json:"speakers"`
}

// SessionizeLink is a profile link attached to a speaker.
type SessionizeLink struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	LinkType string `json:"linkType"`
}

// SessionizeSpeaker is a speaker in the Sessionize All response.
type SessionizeSpeaker struct {
	ID        string           `json:"id"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	FullName  string           `json:"fullName"`
	Links     []SessionizeLink `json:"links"`
}

// LinkedInProfile returns the speaker's LinkedIn url, or "" when none is listed.
func (s SessionizeSpeaker) LinkedInProfile() string {
	for _, l := range s.Links {
		if l.LinkType == "LinkedIn" {
			return l.URL
		}
	}
	return ""
}

// DisplayName returns FullName, falling back to "FirstName LastName".
func (s SessionizeSpeaker) DisplayName() string {
	if s.FullName != "" {
		return s.FullName
	}
	if s.LastName == "" {
		return s.FirstName
	}
	if s.FirstName == "" {
		return s.LastName
	}
	return s.FirstName + " " + s.LastName
}
