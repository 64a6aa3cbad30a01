package model

// Feature is one card on the landing page
type Feature struct {
	Title       string
	Icon        string // name of an inline icon in the page template
	Description string
	Href        string
}

// Features returns the landing page cards in display order. A fresh slice
// is returned on every call so callers cannot mutate the shared list.
func Features() []Feature {
	return []Feature{
		{Title: "Tenants", Icon: "users", Description: "Manage tenant records, leases, and rent", Href: "#"},
		{Title: "Owners", Icon: "users", Description: "Track property owners and contact details", Href: "#"},
		{Title: "Properties", Icon: "building", Description: "List rentals and sales with key details", Href: "#"},
		{Title: "Documents", Icon: "file-text", Description: "Store contracts, IDs, and more", Href: "#"},
		{Title: "Expenses", Icon: "receipt", Description: "Record property-related expenses", Href: "#"},
		{Title: "Upload", Icon: "file-up", Description: "Upload files and auto-extract info", Href: "/upload"},
	}
}
