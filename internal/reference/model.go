package reference

import "context"

type Country struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type State struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Provider supplies the address reference lookups consumed by the
// checkout form.
type Provider interface {
	Countries(ctx context.Context) ([]Country, error)
	States(ctx context.Context, countryCode string) ([]State, error)
}
