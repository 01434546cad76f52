package checkout

import "github.com/andreasstove999/ecommerce-system/storefront-go/internal/forms"

const (
	textRules     = "required,min=2,notonlywhitespace"
	emailRules    = "required,shopemail"
	requiredRules = "required"
)

// buildCheckoutForm assembles the nested form tree: customer details,
// shipping and billing addresses, and an empty creditCard group whose
// fields live in the payment widget, not here.
func buildCheckoutForm() *forms.Group {
	customer := forms.NewGroup().
		AddField("firstName", forms.NewField(textRules)).
		AddField("lastName", forms.NewField(textRules)).
		AddField("email", forms.NewField(emailRules))

	return forms.NewGroup().
		AddGroup("customer", customer).
		AddGroup("shippingAddress", newAddressGroup()).
		AddGroup("billingAddress", newAddressGroup()).
		AddGroup("creditCard", forms.NewGroup())
}

func newAddressGroup() *forms.Group {
	return forms.NewGroup().
		AddField("street", forms.NewField(textRules)).
		AddField("city", forms.NewField(textRules)).
		AddField("state", forms.NewField(requiredRules)).
		AddField("country", forms.NewField(requiredRules)).
		AddField("zipCode", forms.NewField(textRules))
}
