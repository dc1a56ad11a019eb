package domain

import "time"

// Inquiry is an inbound lead/enquiry submission. The validate tags are the
// schema: validation runs before any call to the upstream store, so an
// invalid submission never leaves this process.
type Inquiry struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty"`
	Message string `json:"message" validate:"required"`
	Type    string `json:"type" validate:"omitempty,oneof=general product supplier buyer"`

	// Optional product context when the enquiry comes from a product page.
	ProductID   string `json:"productId,omitempty" validate:"omitempty"`
	ProductName string `json:"productName,omitempty" validate:"omitempty"`

	// Optional B2B qualification fields from the supplier/buyer forms.
	Company            string   `json:"company,omitempty" validate:"omitempty"`
	Website            string   `json:"website,omitempty" validate:"omitempty"`
	Certifications     string   `json:"certifications,omitempty" validate:"omitempty"`
	Categories         []string `json:"categories,omitempty" validate:"omitempty"`
	YearsInBusiness    string   `json:"yearsInBusiness,omitempty" validate:"omitempty"`
	Volume             string   `json:"volume,omitempty" validate:"omitempty"`
	DistributionModels []string `json:"distributionModels,omitempty" validate:"omitempty"`
	ProductsOfInterest []string `json:"productsOfInterest,omitempty" validate:"omitempty"`

	// Reference is assigned by this service after validation and echoed to
	// the client, so a lead can be quoted in follow-up correspondence.
	Reference string `json:"reference,omitempty"`
}

// CreatedInquiry is the upstream store's representation of a persisted
// enquiry, returned to the client on successful submission.
type CreatedInquiry struct {
	ID        string     `json:"_id"`
	Inquiry
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}
