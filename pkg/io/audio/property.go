package audio

// Property represents an audio's basic properties
type Property struct {
	ChannelCount int
	SampleRate   int
}
