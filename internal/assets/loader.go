package assets

// DefaultStyleName is the built-in stylesheet used when nothing else is configured.
const DefaultStyleName = "default"

// StyleLoader defines the contract for loading CSS styles by name.
type StyleLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)
}
