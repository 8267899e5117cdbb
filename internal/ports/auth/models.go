package auth

// Claims representa la identidad extraída del token.
// HeroID es el id canónico del héroe (forma decimal del entero).
type Claims struct {
	HeroID string
	Name   string
}
