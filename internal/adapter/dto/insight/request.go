package insight

// Participant is a structured participant entry; only the display name is
// retained, flattened into a single delimited string at write time
type Participant struct {
	Name string `json:"name"`
}

// IngestTranscriptRequest represents the request to ingest a raw transcript
type IngestTranscriptRequest struct {
	TranscriptID *string       `json:"transcript_id,omitempty" validate:"omitempty,uuid"`
	Title        string        `json:"title"`
	Participants []Participant `json:"participants"`
	Transcript   string        `json:"transcript"`
}

// IngestAudioRequest represents the request to ingest an audio recording
type IngestAudioRequest struct {
	Title        string        `json:"title"`
	Participants []Participant `json:"participants"`
	AudioURL     string        `json:"audio_url" validate:"required,url"`
}

// Names flattens participants to their display names, skipping empties
func Names(participants []Participant) []string {
	names := make([]string, 0, len(participants))
	for _, p := range participants {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return names
}
