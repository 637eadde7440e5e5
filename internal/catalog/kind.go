package catalog

// Kind is a category of exported artifact.
type Kind int

const (
	KindPopulation Kind = iota
	KindPlayers
	KindSessions
	KindEvents
	KindRaw
)

// Kinds lists every artifact kind in serialization order.
var Kinds = []Kind{KindPopulation, KindPlayers, KindSessions, KindEvents, KindRaw}

func (k Kind) String() string {
	switch k {
	case KindPopulation:
		return "population"
	case KindPlayers:
		return "players"
	case KindSessions:
		return "sessions"
	case KindEvents:
		return "events"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// FileKey is the serialized key holding the artifact path.
func (k Kind) FileKey() string {
	return k.String() + "_file"
}

// HasTemplate reports whether the kind carries a template reference. Raw
// exports are never rendered, so they have none.
func (k Kind) HasTemplate() bool {
	return k != KindRaw
}

// TemplateKey is the serialized key holding the template reference.
func (k Kind) TemplateKey() string {
	return k.String() + "_template"
}
