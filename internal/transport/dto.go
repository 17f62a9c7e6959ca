package transport

import "strings"

// Request bodies accept both JSON and form encoding.

type SignupRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

type AddToCartRequest struct {
	Quantity Quantity `json:"quantity" form:"quantity"`
}

// Quantity keeps the raw requested amount, whether it arrived as a JSON
// number, a JSON string or a form field.
type Quantity string

func (q *Quantity) UnmarshalJSON(b []byte) error {
	*q = Quantity(strings.Trim(string(b), `"`))
	return nil
}

func (q *Quantity) UnmarshalParam(param string) error {
	*q = Quantity(param)
	return nil
}

type ProductRequest struct {
	Name        string  `json:"name"        form:"name"`
	Brand       string  `json:"brand"       form:"brand"`
	Price       float64 `json:"price"       form:"price"`
	Description string  `json:"description" form:"description"`
	ImageURL    string  `json:"image_url"   form:"image_url"`
	Thumb1      string  `json:"thumb1"      form:"thumb1"`
	Thumb2      string  `json:"thumb2"      form:"thumb2"`
	Thumb3      string  `json:"thumb3"      form:"thumb3"`
	Thumb4      string  `json:"thumb4"      form:"thumb4"`
}

type BannerRequest struct {
	Title      string `json:"title"       form:"title"`
	Subtitle   string `json:"subtitle"    form:"subtitle"`
	Details    string `json:"details"     form:"details"`
	ButtonText string `json:"button_text" form:"button_text"`
	ButtonLink string `json:"button_link" form:"button_link"`
	ImageURL   string `json:"image_url"   form:"image_url"`
}

type ContactRequest struct {
	Name    string `json:"name"    form:"name"`
	Email   string `json:"email"   form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}
