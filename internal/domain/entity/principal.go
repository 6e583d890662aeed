package entity

// Principal identifies the caller of a business operation. Authentication
// itself lives at the transport boundary; handlers only ever see this value.
// The anonymous variant is a first-class configuration option used in
// development, not a bypass inside the handlers.
type Principal struct {
	ID        string
	Name      string
	Email     string
	Anonymous bool
}

// AnonymousPrincipal builds the development/anonymous principal with the
// configured fallback email.
func AnonymousPrincipal(email string) Principal {
	return Principal{
		ID:        "anonymous",
		Name:      "Desenvolvedor",
		Email:     email,
		Anonymous: true,
	}
}
