package product

// Product is the catalog record as stored in DynamoDB. Attribute names
// mirror the JSON field names so the table layout stays compatible with
// rows written by earlier versions of the importer.
type Product struct {
	ID          string   `json:"id" dynamodbav:"id"`
	Name        string   `json:"name" dynamodbav:"name"`
	Category    string   `json:"category" dynamodbav:"category"`
	Price       float64  `json:"price" dynamodbav:"price"`
	Quantity    int      `json:"quantity" dynamodbav:"quantity"`
	InStock     bool     `json:"inStock" dynamodbav:"inStock"`
	Description string   `json:"description,omitempty" dynamodbav:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty" dynamodbav:"imageUrl,omitempty"`
	Tags        []string `json:"tags,omitempty" dynamodbav:"tags,omitempty"`
	CreatedAt   string   `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt   string   `json:"updatedAt" dynamodbav:"updatedAt"`
}

// CreateProductData carries the caller-supplied fields for a new product.
// Numeric and boolean fields are pointers so that legitimate zero values
// (price 0, quantity 0, inStock false) survive the required check.
type CreateProductData struct {
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Quantity    *int     `json:"quantity" validate:"required,gte=0"`
	InStock     *bool    `json:"inStock" validate:"required"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateProductData is a partial update: nil fields are left untouched,
// every present field must satisfy the same rule it has at creation.
type UpdateProductData struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,min=1"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	InStock     *bool    `json:"inStock,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Tags        []string `json:"tags,omitempty"`
}

// IsEmpty reports whether no field at all was supplied. Empty partial
// updates are rejected as invalid requests.
func (d *UpdateProductData) IsEmpty() bool {
	return d.Name == nil &&
		d.Category == nil &&
		d.Price == nil &&
		d.Quantity == nil &&
		d.InStock == nil &&
		d.Description == nil &&
		d.ImageURL == nil &&
		d.Tags == nil
}

// Fields returns the supplied fields keyed by stored attribute name.
// The id and createdAt attributes can never appear here.
func (d *UpdateProductData) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if d.Name != nil {
		fields["name"] = *d.Name
	}
	if d.Category != nil {
		fields["category"] = *d.Category
	}
	if d.Price != nil {
		fields["price"] = *d.Price
	}
	if d.Quantity != nil {
		fields["quantity"] = *d.Quantity
	}
	if d.InStock != nil {
		fields["inStock"] = *d.InStock
	}
	if d.Description != nil {
		fields["description"] = *d.Description
	}
	if d.ImageURL != nil {
		fields["imageUrl"] = *d.ImageURL
	}
	if d.Tags != nil {
		fields["tags"] = d.Tags
	}
	return fields
}
