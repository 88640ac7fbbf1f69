package models

var ConstSalutations = struct {
	Mr      string
	Mrs     string
	Unknown string
}{
	Mr:      "mr",
	Mrs:     "mrs",
	Unknown: "unknown",
}

type Address struct {
	Name    string `json:"name,omitempty"`
	Street  string `json:"street,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty" validate:"omitempty,iso3166_1_alpha2"`
}

type Customer struct {
	attachment
	ID              string   `json:"id,omitempty"`
	CustomerID      string   `json:"customerId,omitempty"`
	Firstname       string   `json:"firstname" validate:"required"`
	Lastname        string   `json:"lastname" validate:"required"`
	Salutation      string   `json:"salutation,omitempty" validate:"omitempty,oneof=mr mrs unknown"`
	BirthDate       string   `json:"birthDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Company         string   `json:"company,omitempty"`
	Email           string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone           string   `json:"phone,omitempty"`
	Mobile          string   `json:"mobile,omitempty"`
	BillingAddress  *Address `json:"billingAddress,omitempty"`
	ShippingAddress *Address `json:"shippingAddress,omitempty"`
}

// NewCustomer creates a customer with the mandatory name fields set.
func NewCustomer(firstname, lastname string) *Customer {
	return &Customer{Firstname: firstname, Lastname: lastname}
}

func (c *Customer) GetID() string {
	return c.ID
}

func (c *Customer) ResourcePath() string {
	return "customers"
}
