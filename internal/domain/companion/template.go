package companion

const (
	VoiceMale   = "male"
	VoiceFemale = "female"

	StyleCasual = "casual"
	StyleFormal = "formal"
)

// TemplateInput carries the fields a template supplies. Voice and style are derived.
type TemplateInput struct {
	Name       string
	Subject    string
	Topic      string
	Duration   int
	Bookmarked bool
}

// DeriveVoiceStyle returns the default voice and style for a subject. Matching is exact.
func DeriveVoiceStyle(subject string) (voice, style string) {
	switch subject {
	case "science":
		return VoiceFemale, StyleCasual
	case "history":
		return VoiceMale, StyleFormal
	default:
		return VoiceMale, StyleCasual
	}
}

func (in TemplateInput) toCreateInput() CreateInput {
	voice, style := DeriveVoiceStyle(in.Subject)
	return CreateInput{
		Name:       in.Name,
		Subject:    in.Subject,
		Topic:      in.Topic,
		Voice:      voice,
		Style:      style,
		Duration:   in.Duration,
		Bookmarked: in.Bookmarked,
	}
}
