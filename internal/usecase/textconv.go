package usecase

// TextConverter normalizes headword text into the project's canonical
// script (Hong Kong traditional). The conversion tables live outside this
// module; the default passthrough keeps input as written.
type TextConverter interface {
	Convert(s string) string
}

// PassthroughConverter returns text unchanged.
type PassthroughConverter struct{}

func (PassthroughConverter) Convert(s string) string { return s }
