package types

// LocalizedString pairs the Turkish and English renderings of a display string.
type LocalizedString struct {
	TR string `json:"tr" validate:"required"`
	EN string `json:"en" validate:"required"`
}
