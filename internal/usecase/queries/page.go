package queries

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

// Page is limit/offset pagination. Zero values select the first default page.
type Page struct {
	Limit  int
	Offset int
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func (p Page) Normalize() Page {
	p.Limit = ValidateLimit(p.Limit)
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
